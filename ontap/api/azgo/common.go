// Copyright 2026 NetApp, Inc. All Rights Reserved.

package azgo

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	xrv "github.com/mattermost/xml-roundtrip-validator"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/netapp/svm-cutover/config"
)

// ZAPI errno values the cutover cares about.
const (
	EAPIERROR          = "13001"
	EAPIPRIVILEGE      = "13003"
	EAPINOTFOUND       = "13005"
	EINTERNALERROR     = "13114"
	EINVALIDINPUTERROR = "13115"
	EDUPLICATEENTRY    = "13130"
	EOBJECTNOTFOUND    = "15661"
)

const zapiVersion = "1.21"

type ZAPIRequest interface {
	ToXML() (string, error)
}

// ZapiRunner sends command envelopes to the legacy XML interface of a cluster management LIF.
type ZapiRunner struct {
	ManagementLIF   string
	SVM             string
	Username        string
	Password        string
	Secure          bool
	OntapiVersion   string
	DebugTraceFlags map[string]bool // Example: {"api":false, "method":true}
	HTTPClient      *http.Client
}

// Result is the status block every ZAPI response carries.
type Result struct {
	XMLName          xml.Name `xml:"results"`
	ResultStatusAttr string   `xml:"status,attr"`
	ResultReasonAttr string   `xml:"reason,attr"`
	ResultErrnoAttr  string   `xml:"errno,attr"`
	Content          string   `xml:",innerxml"`
}

type resultEnvelope struct {
	XMLName xml.Name `xml:"netapp"`
	Result  Result   `xml:"results"`
}

func (r *Result) IsPassed() bool {
	return r != nil && r.ResultStatusAttr == "passed"
}

// NewHTTPClient returns the client used for ZAPI calls when none is supplied.
func NewHTTPClient(tlsConfig *tls.Config) *http.Client {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{InsecureSkipVerify: true, MinVersion: config.MinTLSVersion}
	}
	return &http.Client{
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
		Timeout:   config.StorageAPITimeoutSeconds * time.Second,
	}
}

// Clone returns a copy of the runner tunneled to the supplied SVM. An empty SVM talks to the cluster.
func (o *ZapiRunner) Clone(svm string) *ZapiRunner {
	clone := new(ZapiRunner)
	*clone = *o
	clone.SVM = svm
	return clone
}

func (o *ZapiRunner) url() string {
	scheme := "http"
	if o.Secure {
		scheme = "https"
	}
	return scheme + "://" + o.ManagementLIF + config.ZAPIServletPath
}

func (o *ZapiRunner) envelope(zapiCommand string) string {
	vfiler := ""
	if o.SVM != "" {
		vfiler = fmt.Sprintf(` vfiler="%s"`, o.SVM)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<netapp xmlns="http://www.netapp.com/filer/admin" version="%s"%s>
%s
</netapp>`, zapiVersion, vfiler, zapiCommand)
}

// SendZapi sends the provided ZAPIRequest to the cluster and returns the raw response body.
func (o *ZapiRunner) SendZapi(ctx context.Context, r ZAPIRequest) ([]byte, error) {
	if o.DebugTraceFlags["method"] {
		fields := log.Fields{"Method": "SendZapi", "Type": "ZapiRunner"}
		log.WithFields(fields).Debug(">>>> SendZapi")
		defer log.WithFields(fields).Debug("<<<< SendZapi")
	}

	zapiCommand, err := r.ToXML()
	if err != nil {
		return nil, err
	}

	s := o.envelope(zapiCommand)
	if o.DebugTraceFlags["api"] {
		log.Debugf("sending to '%s' xml: \n%s", o.ManagementLIF, s)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url(), bytes.NewBufferString(s))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/xml")
	req.SetBasicAuth(o.Username, o.Password)

	client := o.HTTPClient
	if client == nil {
		client = NewHTTPClient(nil)
	}

	response, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return nil, errors.New("response code 401 (Unauthorized): incorrect or missing credentials")
	} else if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response code %d from %s", response.StatusCode, o.ManagementLIF)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read ZAPI response")
	}

	if o.DebugTraceFlags["api"] {
		log.Debugf("response Status: %s", response.Status)
		log.Debugf("response Body: %s", string(body))
	}

	return body, nil
}

// ExecuteUsing sends the request and decodes the status block. When response is not nil the
// whole envelope is also decoded into it.
func (o *ZapiRunner) ExecuteUsing(ctx context.Context, r ZAPIRequest, response any) (*Result, error) {
	body, err := o.SendZapi(ctx, r)
	if err != nil {
		return nil, err
	}

	if err = xrv.Validate(bytes.NewReader(body)); err != nil {
		return nil, errors.Wrap(err, "ZAPI response does not survive an XML round trip")
	}

	envelope := &resultEnvelope{}
	if err = xml.Unmarshal(body, envelope); err != nil {
		return nil, errors.Wrap(err, "could not decode ZAPI response")
	}

	if response != nil && envelope.Result.IsPassed() {
		if err = xml.Unmarshal(body, response); err != nil {
			return &envelope.Result, errors.Wrapf(err, "could not decode %T", response)
		}
	}

	return &envelope.Result, nil
}

// ToXML marshals any ZAPI request struct the same way.
func toXML(o any) (string, error) {
	output, err := xml.MarshalIndent(o, " ", "    ")
	if err != nil {
		log.Errorf("error: %v", err)
	}
	return string(output), err
}
