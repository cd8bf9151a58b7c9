// Copyright 2026 NetApp, Inc. All Rights Reserved.

// Package snapshot reads the share, ACL and volume documents captured from the source SVM before a
// cutover. The documents are input only; nothing here writes them.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

// dynamicPathToken matches the per-user and per-domain substitutions of a home directory share path.
var dynamicPathToken = regexp.MustCompile(`%[wWdDuU]`)

// ExportedShare is a share as it was captured on the source.
type ExportedShare struct {
	ShareName          string   `json:"shareName"`
	Path               string   `json:"path"`
	Comment            string   `json:"comment,omitempty"`
	FileUmask          *int     `json:"fileUmask,omitempty"`
	DirUmask           *int     `json:"dirUmask,omitempty"`
	CachePolicy        string   `json:"cachePolicy,omitempty"`
	AttributeCacheTTL  *int     `json:"attributeCacheTtl,omitempty"`
	PropertySet        []string `json:"propertySet,omitempty"`
	SymlinkPropertySet []string `json:"symlinkPropertySet,omitempty"`
	VscanProfile       string   `json:"vscanProfile,omitempty"`
}

// IsDynamic reports whether the share path is resolved per connecting user or domain.
func (s ExportedShare) IsDynamic() bool {
	return dynamicPathToken.MatchString(s.Path)
}

// VolumeName returns the first segment of the share path, which is the junction of the volume that
// holds the share. Dynamic shares have none.
func (s ExportedShare) VolumeName() string {
	if s.IsDynamic() {
		return ""
	}
	trimmed := strings.Trim(s.Path, "/")
	if trimmed == "" {
		return ""
	}
	volume, _, _ := strings.Cut(trimmed, "/")
	return volume
}

// ExportedAcl is one access control entry of a captured share.
type ExportedAcl struct {
	ShareName       string `json:"shareName"`
	Principal       string `json:"principal"`
	PrincipalType   string `json:"principalType,omitempty"`
	PermissionLevel string `json:"permissionLevel"`
}

// Snapshot is the captured configuration of the source SVM.
type Snapshot struct {
	Shares  []ExportedShare `json:"shares"`
	Acls    []ExportedAcl   `json:"acls"`
	Volumes []string        `json:"volumes,omitempty"`

	// HasVolumes is false when no volume list was captured, which disables the volume cross-check.
	HasVolumes bool `json:"hasVolumes"`
}

// Load reads the snapshot documents from dir. An empty dir yields an empty snapshot.
func Load(ctx context.Context, fs afero.Fs, dir string) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if dir == "" {
		Logc(ctx).Info("No configuration snapshot supplied; shares and ACLs will not be recreated.")
		return snapshot, nil
	}

	if _, err := readDocument(fs, filepath.Join(dir, config.SharesFileName), &snapshot.Shares, true); err != nil {
		return nil, err
	}
	if _, err := readDocument(fs, filepath.Join(dir, config.AclsFileName), &snapshot.Acls, false); err != nil {
		return nil, err
	}
	found, err := readDocument(fs, filepath.Join(dir, config.VolumesFileName), &snapshot.Volumes, false)
	if err != nil {
		return nil, err
	}
	snapshot.HasVolumes = found

	if err = snapshot.Validate(); err != nil {
		return nil, err
	}

	Logc(ctx).WithFields(log.Fields{
		"dir":     dir,
		"shares":  len(snapshot.Shares),
		"acls":    len(snapshot.Acls),
		"volumes": len(snapshot.Volumes),
	}).Info("Loaded configuration snapshot.")

	return snapshot, nil
}

func readDocument(fs afero.Fs, path string, into any, required bool) (bool, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return false, nil
		}
		return false, errors.WrapWithPreconditionError(err, "could not read snapshot document %s", path)
	}
	if err = json.Unmarshal(raw, into); err != nil {
		return false, errors.WrapWithPreconditionError(err, "could not parse snapshot document %s", path)
	}
	return true, nil
}

// Validate rejects entries the rematerializer could not act on.
func (s *Snapshot) Validate() error {
	var problems []string

	names := make(map[string]bool, len(s.Shares))
	for i, share := range s.Shares {
		switch {
		case share.ShareName == "":
			problems = append(problems, fmt.Sprintf("share #%d has no name", i))
		case share.Path == "":
			problems = append(problems, fmt.Sprintf("share %s has no path", share.ShareName))
		case names[strings.ToLower(share.ShareName)]:
			problems = append(problems, fmt.Sprintf("share %s is listed twice", share.ShareName))
		}
		names[strings.ToLower(share.ShareName)] = true
	}

	for i, acl := range s.Acls {
		if acl.ShareName == "" || acl.Principal == "" {
			problems = append(problems, fmt.Sprintf("ACL #%d needs a share name and a principal", i))
		}
	}

	if len(problems) > 0 {
		return errors.PreconditionError("invalid configuration snapshot: %s", strings.Join(problems, "; "))
	}
	return nil
}
