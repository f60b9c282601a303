package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys use the "atoz." namespace.
const (
	AttrRequestID   = "atoz.request_id"
	AttrCategories  = "atoz.listing.categories"
	AttrAdmin       = "atoz.listing.admin"
	AttrBackend     = "atoz.listing.backend"
	AttrResultCount = "atoz.listing.result_count"

	AttrAlphaState  = "atoz.alpha.state"
	AttrAlphaFilter = "atoz.alpha.filter"

	AttrErrorType    = "atoz.error.type"
	AttrErrorMessage = "atoz.error.message"
)

// SetErrorAttributes records err on the span and marks it failed.
// errorType is a short classifier such as "validation" or "storage".
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks the span as successful.
func SetOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
