// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/ontap/api/azgo"
	"github.com/netapp/svm-cutover/snapshot"
)

// PropertyHomeDirectory marks a share whose path is resolved per user.
const PropertyHomeDirectory = "homedirectory"

// shareProperties maps the normalized spelling of a captured share property to its legacy name.
var shareProperties = map[string]string{
	"oplocks":                "oplocks",
	"browsable":              "browsable",
	"showsnapshot":           "showsnapshot",
	"changenotify":           "changenotify",
	"homedirectory":          PropertyHomeDirectory,
	"attributecache":         "attributecache",
	"continuouslyavailable":  "continuously_available",
	"branchcache":            "branchcache",
	"accessbasedenumeration": "access_based_enumeration",
	"shadowcopy":             "shadowcopy",
}

var propertyNameReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

func normalizePropertyName(name string) string {
	return propertyNameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// ShareTranslation splits a captured share into what the primary surface accepts at creation and what
// has to be applied afterwards through the legacy surface.
type ShareTranslation struct {
	Share             api.Share `json:"share"`
	Properties        []string  `json:"properties,omitempty"`
	SymlinkProperties []string  `json:"symlinkProperties,omitempty"`
	VscanProfile      string    `json:"vscanProfile,omitempty"`
	Unknown           []string  `json:"unknown,omitempty"`
}

// HasProperty reports whether the legacy property set contains name.
func (t ShareTranslation) HasProperty(name string) bool {
	for _, property := range t.Properties {
		if property == name {
			return true
		}
	}
	return false
}

// TranslateShare maps a captured share onto both surfaces. Unknown property names are passed through
// unchanged. Dynamic shares always carry the home directory property.
func TranslateShare(ctx context.Context, exported snapshot.ExportedShare) ShareTranslation {
	translation := ShareTranslation{
		Share: api.Share{
			Name:              exported.ShareName,
			Path:              exported.Path,
			Comment:           exported.Comment,
			FileUmask:         exported.FileUmask,
			DirUmask:          exported.DirUmask,
			OfflineFilesMode:  exported.CachePolicy,
			AttributeCacheTTL: exported.AttributeCacheTTL,
		},
		SymlinkProperties: exported.SymlinkPropertySet,
		VscanProfile:      exported.VscanProfile,
	}

	seen := make(map[string]bool)
	add := func(property string) {
		if !seen[property] {
			seen[property] = true
			translation.Properties = append(translation.Properties, property)
		}
	}

	for _, name := range exported.PropertySet {
		if property, ok := shareProperties[normalizePropertyName(name)]; ok {
			add(property)
			continue
		}
		if seen[name] || strings.TrimSpace(name) == "" {
			continue
		}
		Logc(ctx).WithFields(log.Fields{
			"share":    exported.ShareName,
			"property": name,
		}).Warn("Unknown share property; passing it through unchanged.")
		translation.Unknown = append(translation.Unknown, name)
		add(name)
	}

	if exported.IsDynamic() {
		if !seen[PropertyHomeDirectory] {
			Logc(ctx).WithField("share", exported.ShareName).Debug(
				"Adding the home directory property to a dynamic share.")
		}
		add(PropertyHomeDirectory)
	}
	if seen[PropertyHomeDirectory] {
		translation.Share.HomeDirectory = true
	}

	return translation
}

// legacyModifyRequest builds the follow-up call for everything the primary surface did not take. Parts
// the target cluster cannot accept are logged and left out. The request is empty when nothing remains.
func (r *Run) legacyModifyRequest(ctx context.Context, translation ShareTranslation) *azgo.CifsShareModifyRequest {
	request := azgo.NewCifsShareModifyRequest().SetShareName(translation.Share.Name)
	fields := log.Fields{"share": translation.Share.Name}

	if len(translation.Properties) > 0 {
		if r.Target.SupportsFeature(ctx, api.FeatureShareProperties) {
			request.SetShareProperties(translation.Properties)
		} else {
			Logc(ctx).WithFields(fields).WithField("properties", translation.Properties).Warn(
				"Target cannot modify share properties; they are not applied.")
		}
	}

	if len(translation.SymlinkProperties) > 0 {
		if r.Target.SupportsFeature(ctx, api.FeatureShareSymlinkModify) {
			request.SetSymlinkProperties(translation.SymlinkProperties)
		} else {
			Logc(ctx).WithFields(fields).WithField("symlinkProperties", translation.SymlinkProperties).Info(
				"Target cannot modify symlink properties; recorded for information only.")
		}
	}

	if translation.VscanProfile != "" {
		if r.Target.SupportsFeature(ctx, api.FeatureShareVscanProfile) {
			request.SetVscanFileopProfile(translation.VscanProfile)
		} else {
			Logc(ctx).WithFields(fields).WithField("vscanProfile", translation.VscanProfile).Info(
				"Target cannot modify the scan profile; recorded for information only.")
		}
	}

	return request
}
