package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors crossing the command boundary so corpus hosts
// can branch on failures without matching message strings.
const (
	codeMessageInvalid  = "CORPUS_COMMAND_INVALID"
	codeRunCanceled     = "CORPUS_COMMAND_CANCELED"
	codeRunTimedOut     = "CORPUS_COMMAND_TIMED_OUT"
	codeRunContextError = "CORPUS_COMMAND_CONTEXT_ERROR"
	codeRunFailed       = "CORPUS_COMMAND_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "corpus command rejected its message").
		WithTextCode(codeMessageInvalid)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	message, code := "corpus command context error", codeRunContextError
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "corpus command canceled", codeRunCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "corpus command timed out", codeRunTimedOut
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "corpus command failed").
		WithTextCode(codeRunFailed)
}
