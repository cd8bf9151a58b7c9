// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/netapp/svm-cutover/utils/errors"
)

type volumeRecord struct {
	UUID string   `json:"uuid"`
	Name string   `json:"name"`
	SVM  nameUUID `json:"svm"`
	Nas  *struct {
		Path string `json:"path,omitempty"`
	} `json:"nas,omitempty"`
}

// GetVolume returns a volume of the SVM by name, including its junction path.
func (c *RestClient) GetVolume(ctx context.Context, svm, name string) (*Volume, error) {
	records, err := listAll[volumeRecord](ctx, c, "/storage/volumes", url.Values{
		"svm.name": {svm},
		"name":     {name},
		"fields":   {"uuid,name,svm,nas.path"},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundError("volume %s not found on SVM %s", name, svm)
	}

	record := records[0]
	volume := &Volume{Name: record.Name, UUID: record.UUID, SVM: record.SVM.Name}
	if record.Nas != nil {
		volume.JunctionPath = record.Nas.Path
	}
	return volume, nil
}

// MountVolume sets the junction path of a volume.
func (c *RestClient) MountVolume(ctx context.Context, svm, name, junctionPath string) error {
	volume, err := c.GetVolume(ctx, svm, name)
	if err != nil {
		return err
	}

	return c.send(ctx, restRequest{
		method:     http.MethodPatch,
		path:       "/storage/volumes/{uuid}",
		pathParams: map[string]string{"uuid": volume.UUID},
		body:       map[string]any{"nas": map[string]string{"path": junctionPath}},
	}, nil)
}
