// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-openapi/runtime"
	runtime_client "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	log "github.com/sirupsen/logrus"

	cutoverconfig "github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////
// REST layer
////////////////////////////////////////////////////////////////////////////////////////////////////////

// ToBoolPointer returns a pointer to the supplied bool
func ToBoolPointer(b bool) *bool {
	return &b
}

// ToIntPointer returns a pointer to the supplied int
func ToIntPointer(i int) *int {
	return &i
}

// RestClient is the object to use for interacting with ONTAP controllers via the REST API
type RestClient struct {
	config     ClientConfig
	tr         *http.Transport
	httpClient *http.Client
	api        *runtime_client.Runtime
	authInfo   runtime.ClientAuthInfoWriter
	svmUUIDs   map[string]string
	m          *sync.Mutex
}

// NewRestClient is a factory method for creating a new instance
func NewRestClient(ctx context.Context, config ClientConfig) (*RestClient, error) {
	tlsConfig, err := newTLSConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	result := &RestClient{
		config:   config,
		svmUUIDs: make(map[string]string),
		m:        &sync.Mutex{},
	}

	result.tr = &http.Transport{TLSClientConfig: tlsConfig}
	result.httpClient = &http.Client{
		Transport: result.tr,
		Timeout:   time.Duration(config.APITimeoutSeconds()) * time.Second,
	}

	result.api = runtime_client.NewWithClient(config.ManagementLIF, restBasePath, []string{"https"},
		result.httpClient)
	result.api.Consumers["application/hal+json"] = runtime.JSONConsumer()
	result.api.Consumers["*/*"] = runtime.ByteStreamConsumer()
	result.api.SetDebug(config.DebugTraceFlags["api"])

	if config.Username != "" && config.Password != "" {
		result.authInfo = runtime_client.BasicAuth(config.Username, config.Password)
	} else {
		result.authInfo = runtime_client.PassThroughAuth
	}

	return result, nil
}

func newTLSConfig(ctx context.Context, config ClientConfig) (*tls.Config, error) {
	var certificates []tls.Certificate
	caCertPool := x509.NewCertPool()
	skipVerify := true

	if config.ClientCertificate != "" && config.ClientPrivateKey != "" {
		certDecode, err := base64.StdEncoding.DecodeString(config.ClientCertificate)
		if err != nil {
			Logc(ctx).Debugf("error: %v", err)
			return nil, errors.New("failed to decode client certificate from base64")
		}
		keyDecode, err := base64.StdEncoding.DecodeString(config.ClientPrivateKey)
		if err != nil {
			Logc(ctx).Debugf("error: %v", err)
			return nil, errors.New("failed to decode private key from base64")
		}
		cert, err := tls.X509KeyPair(certDecode, keyDecode)
		if err != nil {
			Logc(ctx).Debugf("error: %v", err)
			return nil, errors.New("cannot load certificate and key")
		}
		certificates = append(certificates, cert)
	}

	if config.TrustedCACertificate != "" {
		trustedCACert, err := base64.StdEncoding.DecodeString(config.TrustedCACertificate)
		if err != nil {
			Logc(ctx).Debugf("error: %v", err)
			return nil, errors.New("failed to decode trusted CA certificate from base64")
		}
		skipVerify = false
		caCertPool.AppendCertsFromPEM(trustedCACert)
	}

	return &tls.Config{
		InsecureSkipVerify: skipVerify,
		MinVersion:         cutoverconfig.MinTLSVersion,
		Certificates:       certificates,
		RootCAs:            caCertPool,
	}, nil
}

const restBasePath = cutoverconfig.RESTBasePath

type restRequest struct {
	method     string
	path       string
	pathParams map[string]string
	query      url.Values
	body       any
}

type restResponse struct {
	code int
	body []byte
}

type nameUUID struct {
	Name string `json:"name,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

type href struct {
	Href string `json:"href"`
}

type collection[T any] struct {
	Records    []T `json:"records"`
	NumRecords int `json:"num_records"`
	Links      struct {
		Next *href `json:"next"`
	} `json:"_links"`
}

type jobLinkResponse struct {
	Job *struct {
		UUID  string `json:"uuid"`
		Links struct {
			Self href `json:"self"`
		} `json:"_links"`
	} `json:"job"`
}

type jobRecord struct {
	UUID        string `json:"uuid"`
	Description string `json:"description"`
	State       string `json:"state"`
	Message     string `json:"message"`
	Code        int    `json:"code"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

const (
	jobStateQueued  = "queued"
	jobStateRunning = "running"
	jobStatePaused  = "paused"
	jobStateSuccess = "success"
	jobStateFailure = "failure"
)

// submit runs one REST operation and returns the raw response of a successful call.
func (c *RestClient) submit(ctx context.Context, req restRequest) (*restResponse, error) {
	if c.config.DebugTraceFlags["method"] {
		fields := log.Fields{"Method": req.method, "Path": req.path, "Type": "RestClient"}
		Logc(ctx).WithFields(fields).Debug(">>>> submit")
		defer Logc(ctx).WithFields(fields).Debug("<<<< submit")
	}

	params := runtime.ClientRequestWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
		for name, value := range req.pathParams {
			if err := r.SetPathParam(name, value); err != nil {
				return err
			}
		}
		for name, values := range req.query {
			if err := r.SetQueryParam(name, values...); err != nil {
				return err
			}
		}
		if req.body != nil {
			return r.SetBodyParam(req.body)
		}
		return nil
	})

	reader := runtime.ClientResponseReaderFunc(func(
		response runtime.ClientResponse, _ runtime.Consumer,
	) (any, error) {
		body, err := io.ReadAll(response.Body())
		if err != nil {
			return nil, err
		}
		if response.Code() >= http.StatusMultipleChoices {
			return nil, newRestErrorFromResponse(response.Code(), body)
		}
		return &restResponse{code: response.Code(), body: body}, nil
	})

	result, err := c.api.Submit(&runtime.ClientOperation{
		ID:                 req.method + " " + req.path,
		Method:             req.method,
		PathPattern:        req.path,
		ProducesMediaTypes: []string{runtime.JSONMime, "application/hal+json"},
		ConsumesMediaTypes: []string{runtime.JSONMime},
		Schemes:            []string{"https"},
		Params:             params,
		Reader:             reader,
		AuthInfo:           c.authInfo,
		Context:            ctx,
		Client:             c.httpClient,
	})
	if err != nil {
		return nil, classifyError(ctx, err)
	}

	response, ok := result.(*restResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", result)
	}
	return response, nil
}

func newRestErrorFromResponse(status int, body []byte) RestError {
	restErr := RestError{httpStatus: status, message: http.StatusText(status)}
	decoded := restErrorBody{}
	if len(body) > 0 && json.Unmarshal(body, &decoded) == nil && decoded.Error.Message != "" {
		restErr.message = decoded.Error.Message
		restErr.code = decoded.Error.Code
		restErr.target = decoded.Error.Target
	}
	return restErr
}

// send runs a mutating REST operation, waits for the job it starts, and decodes the response into result.
func (c *RestClient) send(ctx context.Context, req restRequest, result any) error {
	response, err := c.submit(ctx, req)
	if err != nil {
		return err
	}

	if response.code == http.StatusAccepted && len(response.body) > 0 {
		jobLink := &jobLinkResponse{}
		if err = json.Unmarshal(response.body, jobLink); err != nil {
			return fmt.Errorf("could not decode job link; %v", err)
		}
		if jobLink.Job != nil && jobLink.Job.UUID != "" {
			return c.PollJobStatus(ctx, jobLink.Job.UUID)
		}
	}

	if result != nil && len(response.body) > 0 {
		if err = json.Unmarshal(response.body, result); err != nil {
			return fmt.Errorf("could not decode %s %s response; %v", req.method, req.path, err)
		}
	}
	return nil
}

// listAll walks every page of a collection, following the _links.next.href the cluster returns.
func listAll[T any](ctx context.Context, c *RestClient, path string, query url.Values) ([]T, error) {
	var records []T

	for {
		response, err := c.submit(ctx, restRequest{method: http.MethodGet, path: path, query: query})
		if err != nil {
			return nil, err
		}

		page := &collection[T]{}
		if len(response.body) > 0 {
			if err = json.Unmarshal(response.body, page); err != nil {
				return nil, fmt.Errorf("could not decode %s response; %v", path, err)
			}
		}
		records = append(records, page.Records...)

		if page.Links.Next == nil || page.Links.Next.Href == "" {
			return records, nil
		}

		next, err := url.Parse(page.Links.Next.Href)
		if err != nil {
			return nil, fmt.Errorf("could not parse next link %s; %v", page.Links.Next.Href, err)
		}
		query = next.Query()
	}
}

// JobGet returns the job with the supplied UUID.
func (c *RestClient) JobGet(ctx context.Context, jobUUID string) (*jobRecord, error) {
	job := &jobRecord{}
	err := c.send(ctx, restRequest{
		method:     http.MethodGet,
		path:       "/cluster/jobs/{uuid}",
		pathParams: map[string]string{"uuid": jobUUID},
		query:      url.Values{"fields": {"**"}},
	}, job)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// IsJobFinished reports whether the job reached a terminal state.
func (c *RestClient) IsJobFinished(ctx context.Context, jobUUID string) (bool, *jobRecord, error) {
	job, err := c.JobGet(ctx, jobUUID)
	if err != nil {
		return false, nil, err
	}

	switch job.State {
	case jobStateQueued, jobStateRunning, jobStatePaused:
		return false, job, nil
	default:
		return true, job, nil
	}
}

// PollJobStatus waits for a job started by a mutating call and returns its failure, if any.
func (c *RestClient) PollJobStatus(ctx context.Context, jobUUID string) error {
	var job *jobRecord

	checkJobStatus := func() error {
		isDone, jobResult, err := c.IsJobFinished(ctx, jobUUID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if !isDone {
			return fmt.Errorf("job %v not yet done", jobUUID)
		}
		job = jobResult
		return nil
	}
	jobStatusNotify := func(err error, duration time.Duration) {
		Logc(ctx).WithField("increment", duration).Debug("Job not yet done, waiting.")
	}
	jobStatusBackoff := backoff.NewExponentialBackOff()
	jobStatusBackoff.InitialInterval = 1 * time.Second
	jobStatusBackoff.Multiplier = 2
	jobStatusBackoff.RandomizationFactor = 0.1
	jobStatusBackoff.MaxElapsedTime = cutoverconfig.JobPollMaxElapsedTime

	// Run the job status check using an exponential backoff
	if err := backoff.RetryNotify(checkJobStatus, backoff.WithContext(jobStatusBackoff, ctx),
		jobStatusNotify); err != nil {
		Logc(ctx).WithField("UUID", jobUUID).Warnf("Job not completed after %3.2f seconds.",
			jobStatusBackoff.MaxElapsedTime.Seconds())
		return err
	}

	Logc(ctx).WithFields(log.Fields{
		"uuid":        job.UUID,
		"description": job.Description,
		"state":       job.State,
		"message":     job.Message,
		"code":        job.Code,
		"start_time":  job.StartTime,
		"end_time":    job.EndTime,
	}).Debug("Job completed.")

	switch job.State {
	case jobStateSuccess:
		return nil
	case jobStateFailure:
		return classifyError(ctx, RestError{
			state:   job.State,
			message: job.Message,
			code:    strconv.Itoa(job.Code),
		})
	default:
		return fmt.Errorf("unexpected job state %v", job.State)
	}
}

// ClusterVersion returns the ONTAP version the cluster reports.
func (c *RestClient) ClusterVersion(ctx context.Context) (string, error) {
	cluster := &struct {
		Version struct {
			Full       string `json:"full"`
			Generation int    `json:"generation"`
			Major      int    `json:"major"`
			Minor      int    `json:"minor"`
		} `json:"version"`
	}{}
	err := c.send(ctx, restRequest{
		method: http.MethodGet,
		path:   "/cluster",
		query:  url.Values{"fields": {"version"}},
	}, cluster)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d.%d", cluster.Version.Generation, cluster.Version.Major, cluster.Version.Minor), nil
}

// svmUUID resolves and caches the UUID of an SVM.
func (c *RestClient) svmUUID(ctx context.Context, svm string) (string, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if uuid, ok := c.svmUUIDs[svm]; ok {
		return uuid, nil
	}

	records, err := listAll[nameUUID](ctx, c, "/svm/svms", url.Values{"name": {svm}, "fields": {"uuid,name"}})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.NotFoundError("SVM %s not found", svm)
	}

	c.svmUUIDs[svm] = records[0].UUID
	return records[0].UUID, nil
}

// Disconnect releases idle connections held by the client.
func (c *RestClient) Disconnect(ctx context.Context) {
	if c.tr != nil {
		c.tr.CloseIdleConnections()
	}
	Logc(ctx).WithField("managementLIF", c.config.ManagementLIF).Debug("REST session closed.")
}
