// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	cutoverconfig "github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api/azgo"
	"github.com/netapp/svm-cutover/utils/errors"
)

// ClientConfig holds the connection details of one cluster.
type ClientConfig struct {
	ManagementLIF        string
	SVM                  string
	Username             string
	Password             string
	ClientCertificate    string
	ClientPrivateKey     string
	TrustedCACertificate string
	TimeoutSeconds       int
	DebugTraceFlags      map[string]bool
}

// NewClientConfig converts the cluster section of a run configuration.
func NewClientConfig(cluster cutoverconfig.ClusterConfig) ClientConfig {
	return ClientConfig{
		ManagementLIF:        cluster.ManagementLIF,
		SVM:                  cluster.SVM,
		Username:             cluster.Username,
		Password:             cluster.Password,
		ClientCertificate:    cluster.ClientCertificate,
		ClientPrivateKey:     cluster.ClientPrivateKey,
		TrustedCACertificate: cluster.TrustedCACertificate,
		DebugTraceFlags:      cluster.DebugTraceFlags,
	}
}

func (c ClientConfig) APITimeoutSeconds() int {
	if c.TimeoutSeconds > 0 {
		return c.TimeoutSeconds
	}
	return cutoverconfig.StorageAPITimeoutSeconds
}

// Client is the ClusterClient of one cluster. Resources are managed through REST; share properties the
// REST interface cannot set go through the legacy ZAPI runner.
type Client struct {
	*RestClient
	zr            *azgo.ZapiRunner
	m             *sync.Mutex
	ontapiVersion string
	ontapVersion  string
}

// NewClient is a factory method for creating a new instance
func NewClient(ctx context.Context, config ClientConfig) (*Client, error) {
	restClient, err := NewRestClient(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Client{
		RestClient: restClient,
		zr: &azgo.ZapiRunner{
			ManagementLIF:   config.ManagementLIF,
			SVM:             config.SVM,
			Username:        config.Username,
			Password:        config.Password,
			Secure:          true,
			DebugTraceFlags: config.DebugTraceFlags,
			HTTPClient:      restClient.httpClient,
		},
		m: &sync.Mutex{},
	}, nil
}

// Connect creates a client and verifies that the cluster answers and the SVM exists.
func Connect(ctx context.Context, config ClientConfig) (*Client, error) {
	client, err := NewClient(ctx, config)
	if err != nil {
		return nil, errors.WrapWithPreconditionError(err, "could not create client for %s", config.ManagementLIF)
	}
	if err = client.verify(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) verify(ctx context.Context) error {
	version, err := c.ClusterVersion(ctx)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not connect to %s", c.config.ManagementLIF)
	}
	c.ontapVersion = version

	if _, err = c.svmUUID(ctx, c.config.SVM); err != nil {
		return errors.WrapWithPreconditionError(err, "could not find SVM %s on %s", c.config.SVM,
			c.config.ManagementLIF)
	}

	Logc(ctx).WithFields(log.Fields{
		"managementLIF": c.config.ManagementLIF,
		"svm":           c.config.SVM,
		"ontapVersion":  version,
	}).Info("Connected to cluster.")

	return nil
}

// ONTAPVersion returns the version reported when connecting.
func (c *Client) ONTAPVersion() string {
	return c.ontapVersion
}

// InvokeLegacyCommand sends a command envelope tunneled to the SVM and returns its result. A failed
// status comes back as a ZapiError mapped to the typed errors.
func (c *Client) InvokeLegacyCommand(ctx context.Context, svm string, request azgo.ZAPIRequest) (*azgo.Result, error) {
	result, err := c.zr.Clone(svm).ExecuteUsing(ctx, request, nil)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	if zerr := NewZapiError(result); !zerr.IsPassed() {
		return result, classifyError(ctx, zerr)
	}
	return result, nil
}

// SystemGetOntapiVersion returns the ONTAPI version of the cluster, caching it after the first call.
func (c *Client) SystemGetOntapiVersion(ctx context.Context) (string, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.ontapiVersion != "" {
		return c.ontapiVersion, nil
	}

	response, result, err := azgo.NewSystemGetOntapiVersionRequest().ExecuteUsing(ctx, c.zr.Clone(""))
	if err != nil {
		return "", classifyError(ctx, err)
	}
	if zerr := NewZapiError(result); !zerr.IsPassed() {
		return "", zerr
	}

	c.ontapiVersion = response.Result.Version()
	Logc(ctx).WithField("ontapiVersion", c.ontapiVersion).Debug("Read ONTAPI version.")
	return c.ontapiVersion, nil
}

// SupportsFeature returns true if the ONTAPI version supports the supplied feature
func (c *Client) SupportsFeature(ctx context.Context, feature Feature) bool {
	ontapiVersion, err := c.SystemGetOntapiVersion(ctx)
	if err != nil {
		Logc(ctx).WithError(err).Debug("Could not read ONTAPI version.")
		return false
	}
	return ontapiSupports(ctx, ontapiVersion, feature)
}

var _ ClusterClient = (*Client)(nil)
