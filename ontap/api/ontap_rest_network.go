// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/netapp/svm-cutover/utils/errors"
)

const ipInterfaceFields = "name,uuid,enabled,state,ip,svm,services,service_policy,location.home_node"

type ipInfo struct {
	Address string `json:"address,omitempty"`
	Netmask string `json:"netmask,omitempty"`
}

type ipInterfaceRecord struct {
	UUID          string   `json:"uuid"`
	Name          string   `json:"name"`
	Enabled       *bool    `json:"enabled"`
	State         string   `json:"state"`
	IP            ipInfo   `json:"ip"`
	SVM           nameUUID `json:"svm"`
	Services      []string `json:"services"`
	ServicePolicy nameUUID `json:"service_policy"`
	Location      struct {
		HomeNode nameUUID `json:"home_node"`
	} `json:"location"`
}

type ipInterfacePatch struct {
	Enabled *bool   `json:"enabled,omitempty"`
	IP      *ipInfo `json:"ip,omitempty"`
}

// toInterface converts a REST record. Services such as "data_cifs" yield the protocol list as-is and
// the role set from their prefix; the service policy name stands in for the single legacy role.
func (r ipInterfaceRecord) toInterface() Interface {
	iface := Interface{
		Name:      r.Name,
		UUID:      r.UUID,
		SVM:       r.SVM.Name,
		Address:   r.IP.Address,
		Netmask:   r.IP.Netmask,
		Enabled:   r.Enabled == nil || *r.Enabled,
		OperState: r.State,
		Role:      r.ServicePolicy.Name,
		Protocols: r.Services,
		HomeNode:  r.Location.HomeNode.Name,
	}

	seen := make(map[string]bool)
	for _, service := range r.Services {
		role, _, _ := strings.Cut(service, "_")
		if role != "" && !seen[role] {
			seen[role] = true
			iface.Roles = append(iface.Roles, role)
		}
	}
	return iface
}

// ListInterfaces returns every IP interface of the SVM.
func (c *RestClient) ListInterfaces(ctx context.Context, svm string) ([]Interface, error) {
	records, err := listAll[ipInterfaceRecord](ctx, c, "/network/ip/interfaces", url.Values{
		"svm.name": {svm},
		"fields":   {ipInterfaceFields},
	})
	if err != nil {
		return nil, err
	}

	interfaces := make([]Interface, 0, len(records))
	for _, record := range records {
		interfaces = append(interfaces, record.toInterface())
	}
	return interfaces, nil
}

// GetInterface returns one IP interface of the SVM by name.
func (c *RestClient) GetInterface(ctx context.Context, svm, name string) (*Interface, error) {
	records, err := listAll[ipInterfaceRecord](ctx, c, "/network/ip/interfaces", url.Values{
		"svm.name": {svm},
		"name":     {name},
		"fields":   {ipInterfaceFields},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundError("interface %s not found on SVM %s", name, svm)
	}

	iface := records[0].toInterface()
	return &iface, nil
}

// SetInterface changes the administrative state and/or address of an IP interface.
func (c *RestClient) SetInterface(ctx context.Context, svm, name string, modify InterfaceModify) error {
	if modify.IsEmpty() {
		return nil
	}

	iface, err := c.GetInterface(ctx, svm, name)
	if err != nil {
		return err
	}

	patch := ipInterfacePatch{Enabled: modify.Enabled}
	if modify.Address != "" || modify.Netmask != "" {
		patch.IP = &ipInfo{Address: modify.Address, Netmask: modify.Netmask}
	}

	return c.send(ctx, restRequest{
		method:     http.MethodPatch,
		path:       "/network/ip/interfaces/{uuid}",
		pathParams: map[string]string{"uuid": iface.UUID},
		body:       patch,
	}, nil)
}
