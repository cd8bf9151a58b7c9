// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"strings"

	"github.com/netapp/svm-cutover/ontap/api"
)

const dataRole = "data"

// cifsProtocols are the spellings different schema versions use for the CIFS data protocol.
var cifsProtocols = []string{"cifs", "smb", "data_cifs"}

// InterfaceRule is one way of recognising a CIFS data interface.
type InterfaceRule struct {
	Name  string
	Match func(api.Interface) bool
}

// InterfaceMatcher evaluates its rules in order and returns the interfaces matched by the first rule that
// matches any. With RequireEnabled only administratively up interfaces are considered.
type InterfaceMatcher struct {
	Rules          []InterfaceRule
	RequireEnabled bool
}

// NewInterfaceMatcher returns the matcher used for discovery: every role predicate combined with the exact
// protocol predicate first, then with the substring protocol predicate.
func NewInterfaceMatcher(requireEnabled bool) InterfaceMatcher {
	roles := []struct {
		name  string
		match func(api.Interface) bool
	}{
		{"role exact", roleExact},
		{"role set", roleInSet},
		{"role substring", roleContains},
	}
	protocols := []struct {
		name  string
		match func(api.Interface) bool
	}{
		{"protocol exact", protocolExact},
		{"protocol substring", protocolContains},
	}

	matcher := InterfaceMatcher{RequireEnabled: requireEnabled}
	for _, protocol := range protocols {
		for _, role := range roles {
			roleMatch, protocolMatch := role.match, protocol.match
			matcher.Rules = append(matcher.Rules, InterfaceRule{
				Name: role.name + ", " + protocol.name,
				Match: func(iface api.Interface) bool {
					return roleMatch(iface) && protocolMatch(iface)
				},
			})
		}
	}
	return matcher
}

// Match returns the interfaces selected by the first satisfied rule, and that rule's name.
func (m InterfaceMatcher) Match(interfaces []api.Interface) ([]api.Interface, string) {
	for _, rule := range m.Rules {
		var matched []api.Interface
		for _, iface := range interfaces {
			if m.RequireEnabled && !iface.Enabled {
				continue
			}
			if rule.Match(iface) {
				matched = append(matched, iface)
			}
		}
		if len(matched) > 0 {
			return matched, rule.Name
		}
	}
	return nil, ""
}

func roleExact(iface api.Interface) bool {
	return strings.EqualFold(iface.Role, dataRole)
}

func roleInSet(iface api.Interface) bool {
	for _, role := range iface.Roles {
		if strings.EqualFold(role, dataRole) {
			return true
		}
	}
	return false
}

func roleContains(iface api.Interface) bool {
	if strings.Contains(strings.ToLower(iface.Role), dataRole) {
		return true
	}
	for _, role := range iface.Roles {
		if strings.Contains(strings.ToLower(role), dataRole) {
			return true
		}
	}
	return false
}

func protocolExact(iface api.Interface) bool {
	for _, protocol := range iface.Protocols {
		for _, cifs := range cifsProtocols {
			if strings.EqualFold(protocol, cifs) {
				return true
			}
		}
	}
	return false
}

func protocolContains(iface api.Interface) bool {
	for _, protocol := range iface.Protocols {
		if strings.Contains(strings.ToLower(protocol), "cifs") {
			return true
		}
	}
	return false
}
