// Copyright 2026 NetApp, Inc. All Rights Reserved.

package config

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"
)

const (
	/* Misc. tool constants */
	ToolName       = "svmcutover"
	toolVersion    = "26.10.0"
	ConfigEnvTitle = "SVMCUTOVER"

	/* Cluster API constants */
	StorageAPITimeoutSeconds = 90
	RESTBasePath             = "/api"
	ZAPIServletPath          = "/servlets/netapp.servlets.admin.XMLrequest_filer"
	MinTLSVersion            = tls.VersionTLS12
	JobPollMaxElapsedTime    = 2 * time.Minute

	/* Run defaults */
	DefaultPollInterval = 30 * time.Second
	DefaultSettleDelay  = 5 * time.Second
	DefaultRetryBudget  = 3
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"

	/* Confirmation of interface state after a change */
	InterfaceConfirmAttempts = 3

	// InterfaceRecoveryTimeout bounds bringing a target interface back up once the run context has ended.
	InterfaceRecoveryTimeout = 2 * time.Minute

	/* Snapshot document names */
	SharesFileName  = "shares.json"
	AclsFileName    = "acls.json"
	VolumesFileName = "volumes.json"

	/* CIFS defaults */
	DefaultEveryonePrincipal = "Everyone"
	PrincipalTypeWindows     = "windows"
)

// AdministrativeShares are created by the CIFS server itself and are never recreated.
var AdministrativeShares = []string{"admin$", "c$", "ipc$"}

var (
	// BuildHash is the git hash the binary was built from
	BuildHash = "unknown"

	// BuildType is the type of build: custom, beta or stable
	BuildType = "custom"

	// BuildTime is the time the binary was built
	BuildTime = "unknown"
)

// Version returns the tool version including build type and hash for non-stable builds.
func Version() string {
	if BuildType == "stable" {
		return toolVersion
	}
	return fmt.Sprintf("%s-%s+%s", toolVersion, BuildType, BuildHash)
}

// IsAdministrativeShare reports whether the share name is one of the CIFS server's own shares.
func IsAdministrativeShare(name string) bool {
	for _, admin := range AdministrativeShares {
		if strings.EqualFold(admin, name) {
			return true
		}
	}
	return false
}
