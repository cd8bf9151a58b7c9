// Copyright 2026 NetApp, Inc. All Rights Reserved.

package azgo

import (
	"context"
	"encoding/xml"
)

// CifsShareModifyRequest is a structure to represent a cifs-share-modify Request ZAPI object
type CifsShareModifyRequest struct {
	XMLName               xml.Name                          `xml:"cifs-share-modify"`
	ShareNamePtr          *string                           `xml:"share-name"`
	AttributeCacheTtlPtr  *int                              `xml:"attribute-cache-ttl"`
	SharePropertiesPtr    *CifsShareModifyRequestProperties `xml:"share-properties"`
	SymlinkPropertiesPtr  *CifsShareModifyRequestSymlinks   `xml:"symlink-properties"`
	VscanFileopProfilePtr *string                           `xml:"vscan-fileop-profile"`
}

// CifsShareModifyRequestProperties is a wrapper
type CifsShareModifyRequestProperties struct {
	XMLName                xml.Name `xml:"share-properties"`
	CifsSharePropertiesPtr []string `xml:"cifs-share-properties"`
}

// CifsShareModifyRequestSymlinks is a wrapper
type CifsShareModifyRequestSymlinks struct {
	XMLName                       xml.Name `xml:"symlink-properties"`
	CifsShareSymlinkPropertiesPtr []string `xml:"cifs-share-symlink-properties"`
}

// NewCifsShareModifyRequest is a factory method for creating new instances of CifsShareModifyRequest objects
func NewCifsShareModifyRequest() *CifsShareModifyRequest {
	return &CifsShareModifyRequest{}
}

// ToXML converts this object into an xml string representation
func (o *CifsShareModifyRequest) ToXML() (string, error) {
	return toXML(o)
}

// ExecuteUsing converts this object to a ZAPI XML representation and uses the supplied ZapiRunner to send to a filer
func (o *CifsShareModifyRequest) ExecuteUsing(ctx context.Context, zr *ZapiRunner) (*Result, error) {
	return zr.ExecuteUsing(ctx, o, nil)
}

// ShareName is a 'getter' method
func (o *CifsShareModifyRequest) ShareName() string {
	var r string
	if o.ShareNamePtr == nil {
		return r
	}
	r = *o.ShareNamePtr
	return r
}

// SetShareName is a fluent style 'setter' method that can be chained
func (o *CifsShareModifyRequest) SetShareName(newValue string) *CifsShareModifyRequest {
	o.ShareNamePtr = &newValue
	return o
}

// AttributeCacheTtl is a 'getter' method
func (o *CifsShareModifyRequest) AttributeCacheTtl() int {
	var r int
	if o.AttributeCacheTtlPtr == nil {
		return r
	}
	r = *o.AttributeCacheTtlPtr
	return r
}

// SetAttributeCacheTtl is a fluent style 'setter' method that can be chained
func (o *CifsShareModifyRequest) SetAttributeCacheTtl(newValue int) *CifsShareModifyRequest {
	o.AttributeCacheTtlPtr = &newValue
	return o
}

// ShareProperties is a 'getter' method
func (o *CifsShareModifyRequest) ShareProperties() []string {
	if o.SharePropertiesPtr == nil {
		return nil
	}
	return o.SharePropertiesPtr.CifsSharePropertiesPtr
}

// SetShareProperties is a fluent style 'setter' method that can be chained
func (o *CifsShareModifyRequest) SetShareProperties(newValue []string) *CifsShareModifyRequest {
	o.SharePropertiesPtr = &CifsShareModifyRequestProperties{CifsSharePropertiesPtr: newValue}
	return o
}

// SymlinkProperties is a 'getter' method
func (o *CifsShareModifyRequest) SymlinkProperties() []string {
	if o.SymlinkPropertiesPtr == nil {
		return nil
	}
	return o.SymlinkPropertiesPtr.CifsShareSymlinkPropertiesPtr
}

// SetSymlinkProperties is a fluent style 'setter' method that can be chained
func (o *CifsShareModifyRequest) SetSymlinkProperties(newValue []string) *CifsShareModifyRequest {
	o.SymlinkPropertiesPtr = &CifsShareModifyRequestSymlinks{CifsShareSymlinkPropertiesPtr: newValue}
	return o
}

// VscanFileopProfile is a 'getter' method
func (o *CifsShareModifyRequest) VscanFileopProfile() string {
	var r string
	if o.VscanFileopProfilePtr == nil {
		return r
	}
	r = *o.VscanFileopProfilePtr
	return r
}

// SetVscanFileopProfile is a fluent style 'setter' method that can be chained
func (o *CifsShareModifyRequest) SetVscanFileopProfile(newValue string) *CifsShareModifyRequest {
	o.VscanFileopProfilePtr = &newValue
	return o
}

// IsEmpty reports whether the request would change nothing besides naming the share.
func (o *CifsShareModifyRequest) IsEmpty() bool {
	return o.AttributeCacheTtlPtr == nil && len(o.ShareProperties()) == 0 &&
		len(o.SymlinkProperties()) == 0 && o.VscanFileopProfilePtr == nil
}
