// Copyright 2026 NetApp, Inc. All Rights Reserved.

package azgo

import (
	"context"
	"encoding/xml"
	"fmt"
)

// SystemGetOntapiVersionRequest is a structure to represent a system-get-ontapi-version Request ZAPI object
type SystemGetOntapiVersionRequest struct {
	XMLName xml.Name `xml:"system-get-ontapi-version"`
}

// SystemGetOntapiVersionResponse is a structure to represent a system-get-ontapi-version Response ZAPI object
type SystemGetOntapiVersionResponse struct {
	XMLName xml.Name                             `xml:"netapp"`
	Result  SystemGetOntapiVersionResponseResult `xml:"results"`
}

// SystemGetOntapiVersionResponseResult is a structure to represent a system-get-ontapi-version Response Result ZAPI object
type SystemGetOntapiVersionResponseResult struct {
	XMLName         xml.Name `xml:"results"`
	MajorVersionPtr *int     `xml:"major-version"`
	MinorVersionPtr *int     `xml:"minor-version"`
}

// NewSystemGetOntapiVersionRequest is a factory method for creating new instances of SystemGetOntapiVersionRequest objects
func NewSystemGetOntapiVersionRequest() *SystemGetOntapiVersionRequest {
	return &SystemGetOntapiVersionRequest{}
}

// ToXML converts this object into an xml string representation
func (o *SystemGetOntapiVersionRequest) ToXML() (string, error) {
	return toXML(o)
}

// ExecuteUsing converts this object to a ZAPI XML representation and uses the supplied ZapiRunner to send to a filer
func (o *SystemGetOntapiVersionRequest) ExecuteUsing(
	ctx context.Context, zr *ZapiRunner,
) (*SystemGetOntapiVersionResponse, *Result, error) {
	response := &SystemGetOntapiVersionResponse{}
	result, err := zr.ExecuteUsing(ctx, o, response)
	return response, result, err
}

// Version returns the ONTAPI version as "major.minor", or an empty string if the response had none.
func (o *SystemGetOntapiVersionResponseResult) Version() string {
	if o.MajorVersionPtr == nil || o.MinorVersionPtr == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d", *o.MajorVersionPtr, *o.MinorVersionPtr)
}
