// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"net/http"
	"net/url"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

const (
	snapmirrorFields = "uuid,source.path,destination.path,state,healthy,transfer.state,transfer.bytes_transferred"

	snapmirrorStatePaused    = "paused"
	snapmirrorStateBrokenOff = "broken_off"
)

type snapmirrorRecord struct {
	UUID   string `json:"uuid"`
	Source struct {
		Path string `json:"path"`
	} `json:"source"`
	Destination struct {
		Path string `json:"path"`
	} `json:"destination"`
	State    string `json:"state"`
	Healthy  *bool  `json:"healthy"`
	Transfer *struct {
		State            string `json:"state"`
		BytesTransferred uint64 `json:"bytes_transferred"`
	} `json:"transfer"`
}

func (r snapmirrorRecord) toRelationship() Relationship {
	relationship := Relationship{
		UUID:            r.UUID,
		SourcePath:      r.Source.Path,
		DestinationPath: r.Destination.Path,
		MirrorState:     r.State,
		Healthy:         r.Healthy == nil || *r.Healthy,
	}

	transferState := ""
	if r.Transfer != nil {
		transferState = r.Transfer.State
		relationship.TransferBytes = r.Transfer.BytesTransferred
	}
	relationship.Status = RelationshipStatusFromREST(r.State, transferState)
	return relationship
}

// ListReplications returns every replication relationship the cluster knows, as source or destination.
func (c *RestClient) ListReplications(ctx context.Context) ([]Relationship, error) {
	records, err := listAll[snapmirrorRecord](ctx, c, "/snapmirror/relationships", url.Values{
		"fields": {snapmirrorFields},
	})
	if err != nil {
		return nil, err
	}

	relationships := make([]Relationship, 0, len(records))
	for _, record := range records {
		relationships = append(relationships, record.toRelationship())
	}
	return relationships, nil
}

// GetReplication returns the relationship whose destination path is "svm:volume".
func (c *RestClient) GetReplication(ctx context.Context, destination string) (*Relationship, error) {
	records, err := listAll[snapmirrorRecord](ctx, c, "/snapmirror/relationships", url.Values{
		"destination.path": {destination},
		"fields":           {snapmirrorFields},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundError("replication relationship with destination %s not found", destination)
	}

	relationship := records[0].toRelationship()
	return &relationship, nil
}

// UpdateReplication starts a transfer on the relationship.
func (c *RestClient) UpdateReplication(ctx context.Context, destination string) error {
	relationship, err := c.GetReplication(ctx, destination)
	if err != nil {
		return err
	}

	Logc(ctx).WithField("destination", destination).Debug("Starting replication transfer.")
	return c.send(ctx, restRequest{
		method:     http.MethodPost,
		path:       "/snapmirror/relationships/{uuid}/transfers",
		pathParams: map[string]string{"uuid": relationship.UUID},
		body:       struct{}{},
	}, nil)
}

// QuiesceReplication pauses further transfers on the relationship.
func (c *RestClient) QuiesceReplication(ctx context.Context, destination string) error {
	return c.setReplicationState(ctx, destination, snapmirrorStatePaused)
}

// BreakReplication makes the destination volume writable.
func (c *RestClient) BreakReplication(ctx context.Context, destination string) error {
	return c.setReplicationState(ctx, destination, snapmirrorStateBrokenOff)
}

func (c *RestClient) setReplicationState(ctx context.Context, destination, state string) error {
	relationship, err := c.GetReplication(ctx, destination)
	if err != nil {
		return err
	}

	return c.send(ctx, restRequest{
		method:     http.MethodPatch,
		path:       "/snapmirror/relationships/{uuid}",
		pathParams: map[string]string{"uuid": relationship.UUID},
		body:       map[string]string{"state": state},
	}, nil)
}
