// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/netapp/svm-cutover/utils/errors"
)

const cifsShareFields = "name,path,comment,home_directory,file_umask,dir_umask,offline_files," +
	"attribute_cache_ttl,acls"

type cifsShareAcl struct {
	UserOrGroup string `json:"user_or_group"`
	Type        string `json:"type,omitempty"`
	Permission  string `json:"permission,omitempty"`
}

type cifsShareRecord struct {
	SVM               *nameUUID      `json:"svm,omitempty"`
	Name              string         `json:"name"`
	Path              string         `json:"path"`
	Comment           string         `json:"comment,omitempty"`
	HomeDirectory     bool           `json:"home_directory,omitempty"`
	FileUmask         *int           `json:"file_umask,omitempty"`
	DirUmask          *int           `json:"dir_umask,omitempty"`
	OfflineFiles      string         `json:"offline_files,omitempty"`
	AttributeCacheTTL *int           `json:"attribute_cache_ttl,omitempty"`
	Acls              []cifsShareAcl `json:"acls,omitempty"`
}

func (r cifsShareRecord) toShare() Share {
	share := Share{
		Name:              r.Name,
		Path:              r.Path,
		Comment:           r.Comment,
		FileUmask:         r.FileUmask,
		DirUmask:          r.DirUmask,
		OfflineFilesMode:  r.OfflineFiles,
		AttributeCacheTTL: r.AttributeCacheTTL,
		HomeDirectory:     r.HomeDirectory,
	}
	for _, acl := range r.Acls {
		share.Acls = append(share.Acls, ShareAcl{
			Principal:     acl.UserOrGroup,
			PrincipalType: acl.Type,
			Permission:    acl.Permission,
		})
	}
	return share
}

type cifsSessionRecord struct {
	Identifier json.Number `json:"identifier"`
	User       string      `json:"user"`
	ClientIP   string      `json:"client_ip"`
	Protocol   string      `json:"protocol"`
}

type cifsServiceRecord struct {
	Name    string   `json:"name"`
	Enabled *bool    `json:"enabled"`
	SVM     nameUUID `json:"svm"`
}

// ListShares returns every CIFS share of the SVM, including its ACL.
func (c *RestClient) ListShares(ctx context.Context, svm string) ([]Share, error) {
	records, err := listAll[cifsShareRecord](ctx, c, "/protocols/cifs/shares", url.Values{
		"svm.name": {svm},
		"fields":   {cifsShareFields},
	})
	if err != nil {
		return nil, err
	}

	shares := make([]Share, 0, len(records))
	for _, record := range records {
		shares = append(shares, record.toShare())
	}
	return shares, nil
}

// GetShare returns one CIFS share of the SVM by name.
func (c *RestClient) GetShare(ctx context.Context, svm, name string) (*Share, error) {
	svmUUID, err := c.svmUUID(ctx, svm)
	if err != nil {
		return nil, err
	}

	record := &cifsShareRecord{}
	err = c.send(ctx, restRequest{
		method:     http.MethodGet,
		path:       "/protocols/cifs/shares/{svm.uuid}/{name}",
		pathParams: map[string]string{"svm.uuid": svmUUID, "name": name},
		query:      url.Values{"fields": {cifsShareFields}},
	}, record)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.WrapWithNotFoundError(err, "share %s not found on SVM %s", name, svm)
		}
		return nil, err
	}

	share := record.toShare()
	return &share, nil
}

// CreateShare creates a share with the fields the REST interface accepts at creation time.
func (c *RestClient) CreateShare(ctx context.Context, svm string, share Share) error {
	record := cifsShareRecord{
		SVM:               &nameUUID{Name: svm},
		Name:              share.Name,
		Path:              share.Path,
		Comment:           share.Comment,
		HomeDirectory:     share.HomeDirectory,
		FileUmask:         share.FileUmask,
		DirUmask:          share.DirUmask,
		OfflineFiles:      share.OfflineFilesMode,
		AttributeCacheTTL: share.AttributeCacheTTL,
	}

	err := c.send(ctx, restRequest{
		method: http.MethodPost,
		path:   "/protocols/cifs/shares",
		body:   record,
	}, nil)
	if errors.IsAlreadyExistsError(err) {
		return errors.WrapWithAlreadyExistsError(err, "share %s already exists on SVM %s", share.Name, svm)
	}
	return err
}

// AddShareAcl adds one access control entry to a share.
func (c *RestClient) AddShareAcl(ctx context.Context, svm, share string, acl ShareAcl) error {
	svmUUID, err := c.svmUUID(ctx, svm)
	if err != nil {
		return err
	}

	return c.send(ctx, restRequest{
		method:     http.MethodPost,
		path:       "/protocols/cifs/shares/{svm.uuid}/{share}/acls",
		pathParams: map[string]string{"svm.uuid": svmUUID, "share": share},
		body: cifsShareAcl{
			UserOrGroup: acl.Principal,
			Type:        acl.PrincipalType,
			Permission:  acl.Permission,
		},
	}, nil)
}

// RemoveShareAcl removes the access control entry of a principal from a share.
func (c *RestClient) RemoveShareAcl(ctx context.Context, svm, share, principal, principalType string) error {
	svmUUID, err := c.svmUUID(ctx, svm)
	if err != nil {
		return err
	}

	return c.send(ctx, restRequest{
		method: http.MethodDelete,
		path:   "/protocols/cifs/shares/{svm.uuid}/{share}/acls/{user_or_group}/{type}",
		pathParams: map[string]string{
			"svm.uuid":      svmUUID,
			"share":         share,
			"user_or_group": principal,
			"type":          principalType,
		},
	}, nil)
}

// ListSessions returns the open CIFS sessions of the SVM.
func (c *RestClient) ListSessions(ctx context.Context, svm string) ([]ClientSession, error) {
	records, err := listAll[cifsSessionRecord](ctx, c, "/protocols/cifs/sessions", url.Values{
		"svm.name": {svm},
		"fields":   {"identifier,user,client_ip,protocol"},
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]ClientSession, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, ClientSession{
			Identifier:    record.Identifier.String(),
			User:          record.User,
			ClientAddress: record.ClientIP,
			Protocol:      record.Protocol,
		})
	}
	return sessions, nil
}

// GetCifsService returns the CIFS server of the SVM.
func (c *RestClient) GetCifsService(ctx context.Context, svm string) (*CifsService, error) {
	records, err := listAll[cifsServiceRecord](ctx, c, "/protocols/cifs/services", url.Values{
		"svm.name": {svm},
		"fields":   {"name,enabled,svm"},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundError("no CIFS service on SVM %s", svm)
	}

	record := records[0]
	return &CifsService{
		Name:    record.Name,
		SVM:     record.SVM.Name,
		Enabled: record.Enabled == nil || *record.Enabled,
	}, nil
}

// SetCifsServiceEnabled starts or stops the CIFS server of the SVM.
func (c *RestClient) SetCifsServiceEnabled(ctx context.Context, svm string, enabled bool) error {
	svmUUID, err := c.svmUUID(ctx, svm)
	if err != nil {
		return err
	}

	return c.send(ctx, restRequest{
		method:     http.MethodPatch,
		path:       "/protocols/cifs/services/{svm.uuid}",
		pathParams: map[string]string{"svm.uuid": svmUUID},
		body:       map[string]bool{"enabled": enabled},
	}, nil)
}
