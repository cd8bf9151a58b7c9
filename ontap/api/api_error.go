// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/netapp/svm-cutover/ontap/api/azgo"
	"github.com/netapp/svm-cutover/utils/errors"
)

// ///////////////////////////////////////////////////////////////////////////
// REST error codes
// ///////////////////////////////////////////////////////////////////////////
const (
	ENTRY_DOESNT_EXIST                  = "4"
	DUPLICATE_ENTRY                     = "1"
	CIFS_SHARE_ALREADY_EXISTS           = "655394"
	CIFS_SHARE_ACL_ALREADY_EXISTS       = "655437"
	SNAPMIRROR_TRANSFER_IN_PROGRESS     = "13303812"
	SNAPMIRROR_MODIFICATION_IN_PROGRESS = "13303822"
)

// ///////////////////////////////////////////////////////////////////////////
// RestError
// ///////////////////////////////////////////////////////////////////////////

// RestError is a failed REST call, decoded either from an error body or a failed job.
type RestError struct {
	httpStatus int
	state      string
	message    string
	code       string
	target     string
}

type restErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Target  string `json:"target"`
	} `json:"error"`
}

func (e RestError) Error() string {
	if e.state != "" {
		return fmt.Sprintf("API State: %s, Message: %s, Code: %s", e.state, e.message, e.code)
	}
	if e.target != "" {
		return fmt.Sprintf("API status: %d, Message: %s, Code: %s, Target: %s", e.httpStatus, e.message, e.code,
			e.target)
	}
	return fmt.Sprintf("API status: %d, Message: %s, Code: %s", e.httpStatus, e.message, e.code)
}

func (e RestError) HTTPStatus() int {
	return e.httpStatus
}

func (e RestError) Message() string {
	return e.message
}

func (e RestError) Code() string {
	return e.code
}

func (e RestError) IsNotFound() bool {
	return e.httpStatus == http.StatusNotFound || e.code == ENTRY_DOESNT_EXIST
}

func (e RestError) IsDuplicate() bool {
	if e.httpStatus == http.StatusConflict {
		return true
	}
	switch e.code {
	case DUPLICATE_ENTRY, CIFS_SHARE_ALREADY_EXISTS, CIFS_SHARE_ACL_ALREADY_EXISTS:
		return true
	}
	message := strings.ToLower(e.message)
	return strings.Contains(message, "duplicate entry") || strings.Contains(message, "already exists")
}

func (e RestError) IsTransient() bool {
	switch e.httpStatus {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	}
	return e.code == SNAPMIRROR_TRANSFER_IN_PROGRESS || e.code == SNAPMIRROR_MODIFICATION_IN_PROGRESS
}

// ///////////////////////////////////////////////////////////////////////////
// ZapiError
// ///////////////////////////////////////////////////////////////////////////

// ZapiError encapsulates the status, reason, and errno values from a ZAPI invocation, and it provides
// helper methods for detecting common error conditions.
type ZapiError struct {
	status string
	reason string
	code   string
}

func NewZapiError(result *azgo.Result) ZapiError {
	if result == nil {
		return ZapiError{status: "failed", reason: "empty response"}
	}
	return ZapiError{
		status: result.ResultStatusAttr,
		reason: result.ResultReasonAttr,
		code:   result.ResultErrnoAttr,
	}
}

func (e ZapiError) IsPassed() bool {
	return e.status == "passed"
}

func (e ZapiError) Error() string {
	if e.IsPassed() {
		return "API status: passed"
	}
	return fmt.Sprintf("API status: %s, Reason: %s, Code: %s", e.status, e.reason, e.code)
}

func (e ZapiError) IsPrivilegeError() bool {
	return e.code == azgo.EAPIPRIVILEGE
}

func (e ZapiError) IsScopeError() bool {
	return e.code == azgo.EAPIPRIVILEGE || e.code == azgo.EAPINOTFOUND
}

func (e ZapiError) Reason() string {
	return e.reason
}

func (e ZapiError) Code() string {
	return e.code
}

// ///////////////////////////////////////////////////////////////////////////
// classification
// ///////////////////////////////////////////////////////////////////////////

// classifyError maps cluster and transport failures onto the typed errors the cutover reasons about.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var restErr RestError
	if errors.As(err, &restErr) {
		switch {
		case restErr.IsNotFound():
			return errors.WrapWithNotFoundError(restErr, "")
		case restErr.IsDuplicate():
			return errors.WrapWithAlreadyExistsError(restErr, "")
		case restErr.IsTransient():
			return errors.WrapWithTransientRemoteError(restErr, "")
		}
		return restErr
	}

	var zapiErr ZapiError
	if errors.As(err, &zapiErr) {
		switch zapiErr.code {
		case azgo.EOBJECTNOTFOUND:
			return errors.WrapWithNotFoundError(zapiErr, "")
		case azgo.EDUPLICATEENTRY:
			return errors.WrapWithAlreadyExistsError(zapiErr, "")
		}
		return zapiErr
	}

	// Anything that is neither a REST nor a ZAPI failure never reached the cluster's API layer.
	return errors.WrapWithTransientRemoteError(err, "")
}
