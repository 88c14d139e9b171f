package standards

import "github.com/bayat/go-standards/internal/runtimeconfig"

var (
	ErrCorpusRootRequired        = runtimeconfig.ErrCorpusRootRequired
	ErrLinksWorkersInvalid       = runtimeconfig.ErrLinksWorkersInvalid
	ErrHeadersRequiredFieldEmpty = runtimeconfig.ErrHeadersRequiredFieldEmpty
	ErrVersionsManifestRequired  = runtimeconfig.ErrVersionsManifestRequired
	ErrIndexFileRequired         = runtimeconfig.ErrIndexFileRequired
	ErrStorageDriverUnknown      = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired        = runtimeconfig.ErrStorageDSNRequired
	ErrRegistryFeatureRequired   = runtimeconfig.ErrRegistryFeatureRequired
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandTimeoutInvalid     = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	CorpusConfig   = runtimeconfig.CorpusConfig
	ParserConfig   = runtimeconfig.ParserConfig
	LinksConfig    = runtimeconfig.LinksConfig
	HeadersConfig  = runtimeconfig.HeadersConfig
	VersionsConfig = runtimeconfig.VersionsConfig
	IndexConfig    = runtimeconfig.IndexConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
