// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"

	"github.com/blang/semver/v4"

	. "github.com/netapp/svm-cutover/logging"
)

/////////////////////////////////////////////////////////////////////////////
// API feature operations BEGIN

type Feature string

// Define new version-specific feature constants here
const (
	FeatureShareProperties    Feature = "SHARE_PROPERTIES"
	FeatureShareSymlinkModify Feature = "SHARE_SYMLINK_MODIFY"
	FeatureShareVscanProfile  Feature = "SHARE_VSCAN_PROFILE"
)

// Indicate the minimum ONTAPI version for each feature here
var features = map[Feature]semver.Version{
	FeatureShareProperties:    semver.MustParse("1.20.0"), // cDOT 8.0
	FeatureShareSymlinkModify: semver.MustParse("1.21.0"), // cDOT 8.1
	FeatureShareVscanProfile:  semver.MustParse("1.21.0"), // cDOT 8.1
}

// ontapiSupports reports whether the ONTAPI version string ("1.130") reaches the minimum for feature.
func ontapiSupports(ctx context.Context, ontapiVersion string, feature Feature) bool {
	minVersion, ok := features[feature]
	if !ok {
		return false
	}

	version, err := semver.ParseTolerant(ontapiVersion)
	if err != nil {
		Logc(ctx).WithField("ontapiVersion", ontapiVersion).WithError(err).Debug("Could not parse ONTAPI version.")
		return false
	}
	return version.GTE(minVersion)
}

// API feature operations END
/////////////////////////////////////////////////////////////////////////////
