package qrcode

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure returned by the package.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindProcessing ErrorKind = "PROCESSING"
	KindConverting ErrorKind = "CONVERTING"
)

// Kind sentinels. They match any *Error of the same kind through errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation error"}
	ErrProcessing = &Error{Kind: KindProcessing, Message: "processing error"}
	ErrConverting = &Error{Kind: KindConverting, Message: "converting error"}
)

// Messages returned verbatim to callers.
const (
	MsgInvalidText         = "Invalid text. Expected non-empty string"
	MsgNoImageData         = "No image data provided"
	MsgInvalidImageType    = "Invalid image data type. Expected ImageData, got %T"
	MsgInvalidImageShape   = "Invalid image data structure. Expected object with width, height, and data properties"
	MsgNoSymbolFound       = "No QR code found in image"
	msgEncodeFailedPrefix  = "Encode failed"
	msgDecodeFailedPrefix  = "Decode failed"
	msgConvertFailedPrefix = "Convert file to image data failed"
)

// Error is the single error type returned by Encode and Decode.
// Values are never modified after creation.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the collaborator error that caused the failure, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func validationError(msg string) *Error {
	return newError(KindValidation, msg, nil)
}

// KindOf returns the kind carried by err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// translate returns err unchanged when it already carries a kind and wraps it
// as PROCESSING otherwise.
func translate(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindProcessing, fmt.Sprintf("%s: %s", prefix, err.Error()), err)
}
