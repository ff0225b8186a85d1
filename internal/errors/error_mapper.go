package errors

import (
	"context"
	goerrors "errors"
	"net/http"

	"property-dashboard/internal/dashboard"
	"property-dashboard/pkg/listings"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	var (
		validationErr *listings.ValidationError
		malformedErr  *listings.MalformedResponseError
		upstreamErr   *listings.UpstreamError
	)

	switch {
	case goerrors.As(err, &validationErr):
		message := validationErr.Message
		if message == "" {
			message = MsgInvalidParameters
		}
		return NewAppError(technicalMessage, message, ErrCodeValidation, http.StatusBadRequest, err)
	case goerrors.As(err, &malformedErr):
		return NewAppError(technicalMessage, MsgInvalidDataFormat, ErrCodeMalformedResponse, http.StatusBadGateway, err)
	case goerrors.As(err, &upstreamErr):
		return mapUpstream(technicalMessage, upstreamErr, err)
	case goerrors.Is(err, context.DeadlineExceeded):
		return NewAppError(technicalMessage, MsgRequestTimedOut, ErrCodeUpstreamTimeout, http.StatusGatewayTimeout, err)
	case goerrors.Is(err, dashboard.ErrStaleResult):
		return NewAppError(technicalMessage, MsgStaleSearch, ErrCodeStaleSearch, http.StatusConflict, err)
	case goerrors.Is(err, dashboard.ErrSessionNotFound):
		return NewAppError(technicalMessage, MsgSessionNotFound, ErrCodeSessionNotFound, http.StatusNotFound, err)
	case goerrors.Is(err, dashboard.ErrListingNotFound):
		return NewAppError(technicalMessage, MsgListingNotFound, ErrCodeListingNotFound, http.StatusNotFound, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}

// mapUpstream passes the provider's status and message through to the caller.
func mapUpstream(technicalMessage string, upstreamErr *listings.UpstreamError, err error) *AppError {
	status := upstreamErr.StatusCode
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	appErr := NewAppError(technicalMessage, upstreamErr.Message, ErrCodeUpstream, status, err)
	appErr.Details = upstreamErr.Details

	switch status {
	case http.StatusGatewayTimeout:
		appErr.Code = ErrCodeUpstreamTimeout
		appErr.UserMessage = MsgRequestTimedOut
	case http.StatusServiceUnavailable:
		appErr.Code = ErrCodeServiceUnavailable
		appErr.UserMessage = MsgServiceUnavailable
	}
	if appErr.UserMessage == "" {
		appErr.UserMessage = MsgServiceUnavailable
	}
	return appErr
}
