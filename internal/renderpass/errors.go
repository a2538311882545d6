package renderpass

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	parseFailedCode  = "RENDERPASS_PARSE_FAILED"
	renderFailedCode = "RENDERPASS_RENDER_FAILED"
	loadFailedCode   = "RENDERPASS_LOAD_FAILED"
)

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "directive parsing failed").
		WithTextCode(parseFailedCode)
}

func wrapRenderError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "directive render failed").
		WithTextCode(renderFailedCode)
}

func wrapLoadError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "document load failed").
		WithTextCode(loadFailedCode)
}
