package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Profile represents a `polymedia_profile::profile::Profile` Sui object.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	PreviousTx  string `json:"previousTx"`
}

// LookupResult is one element of the vector returned by
// `profile::get_profiles`. Addresses come back from the codec without
// the 0x prefix.
type LookupResult struct {
	LookupAddr  string
	ProfileAddr string
}

// CallArg is a single argument of a MoveCall. Exactly one of Object and
// Pure is set.
type CallArg struct {
	Object string `json:"object,omitempty"`
	Pure   []byte `json:"pure,omitempty"`
}

func ObjectArg(id string) CallArg {
	return CallArg{Object: id}
}

func PureArg(data []byte) CallArg {
	return CallArg{Pure: data}
}

// MoveCall describes a single `package::module::function` invocation.
type MoveCall struct {
	Target        string    `json:"target"`
	TypeArguments []string  `json:"typeArguments"`
	Arguments     []CallArg `json:"arguments"`
}

func MoveTarget(packageID, module, function string) string {
	return fmt.Sprintf("%s::%s::%s", packageID, module, function)
}

type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s ExecutionStatus) IsSuccess() bool {
	return s.Status == StatusSuccess
}

// ReturnValue is a BCS encoded value returned by a Move function together
// with its Move type tag. On the wire it is a 2-tuple `[[bytes...], "type"]`.
type ReturnValue struct {
	Bytes []byte
	Type  string
}

func (rv *ReturnValue) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("return value: expected a 2-tuple, got %d elements", len(tuple))
	}
	var raw []int
	if err := json.Unmarshal(tuple[0], &raw); err != nil {
		return fmt.Errorf("return value bytes: %w", err)
	}
	bytes := make([]byte, len(raw))
	for i, b := range raw {
		if b < 0 || b > 255 {
			return fmt.Errorf("return value bytes: %d at index %d is not a byte", b, i)
		}
		bytes[i] = byte(b)
	}
	if err := json.Unmarshal(tuple[1], &rv.Type); err != nil {
		return fmt.Errorf("return value type: %w", err)
	}
	rv.Bytes = bytes
	return nil
}

type CommandResult struct {
	ReturnValues []ReturnValue `json:"returnValues"`
}

// InspectionResult is the outcome of a dev-inspected (not committed) call.
type InspectionResult struct {
	Effects struct {
		Status ExecutionStatus `json:"status"`
	} `json:"effects"`
	Results []CommandResult `json:"results"`
	Error   string          `json:"error,omitempty"`
}

func (ir *InspectionResult) Status() ExecutionStatus {
	return ir.Effects.Status
}

// ObjectOwner is the ownership metadata of an object. Only one of the
// fields is populated; Immutable objects leave all of them empty.
type ObjectOwner struct {
	AddressOwner string `json:"AddressOwner,omitempty"`
	ObjectOwner  string `json:"ObjectOwner,omitempty"`
	Shared       bool   `json:"-"`
	// InitialSharedVersion is only set for shared objects.
	InitialSharedVersion uint64 `json:"-"`
}

func (o *ObjectOwner) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err == nil {
		// "Immutable"
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("object owner: %w", err)
	}
	if raw, found := fields["AddressOwner"]; found {
		if err := json.Unmarshal(raw, &o.AddressOwner); err != nil {
			return fmt.Errorf("object owner: %w", err)
		}
	}
	if raw, found := fields["ObjectOwner"]; found {
		if err := json.Unmarshal(raw, &o.ObjectOwner); err != nil {
			return fmt.Errorf("object owner: %w", err)
		}
	}
	if raw, found := fields["Shared"]; found {
		o.Shared = true
		var shared struct {
			InitialSharedVersion json.Number `json:"initial_shared_version"`
		}
		if err := json.Unmarshal(raw, &shared); err != nil {
			return fmt.Errorf("object owner: %w", err)
		}
		if shared.InitialSharedVersion != "" {
			version, err := strconv.ParseUint(shared.InitialSharedVersion.String(), 10, 64)
			if err != nil {
				return fmt.Errorf("object owner: initial shared version: %w", err)
			}
			o.InitialSharedVersion = version
		}
	}
	return nil
}

type MoveObject struct {
	DataType string         `json:"dataType"`
	Type     string         `json:"type"`
	Fields   map[string]any `json:"fields"`
}

type ObjectData struct {
	ObjectID            string      `json:"objectId"`
	Owner               ObjectOwner `json:"owner"`
	PreviousTransaction string      `json:"previousTransaction,omitempty"`
	Content             *MoveObject `json:"content,omitempty"`
}

type ObjectError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
}

// RawObject is one entry of a multi-object fetch. Error is set when the
// node could not return the object; Data is nil when there is no content.
type RawObject struct {
	Data  *ObjectData  `json:"data,omitempty"`
	Error *ObjectError `json:"error,omitempty"`
}

type ObjectRef struct {
	ObjectID string      `json:"objectId"`
	Version  json.Number `json:"version"`
	Digest   string      `json:"digest"`
}

type OwnedObjectRef struct {
	Owner     ObjectOwner `json:"owner"`
	Reference ObjectRef   `json:"reference"`
}

type Event struct {
	Type       string         `json:"type"`
	Sender     string         `json:"sender"`
	PackageID  string         `json:"packageId"`
	ParsedJSON map[string]any `json:"parsedJson"`
}

type TransactionEffects struct {
	Status  ExecutionStatus  `json:"status"`
	Created []OwnedObjectRef `json:"created,omitempty"`
}

// ExecutionResult is the response of a signed and executed transaction.
type ExecutionResult struct {
	Digest  string              `json:"digest"`
	Effects *TransactionEffects `json:"effects,omitempty"`
	Events  []Event             `json:"events,omitempty"`
}

func (er *ExecutionResult) Status() ExecutionStatus {
	if er.Effects == nil {
		return ExecutionStatus{}
	}
	return er.Effects.Status
}

type ExecuteOptions struct {
	ShowEffects bool `json:"showEffects"`
	ShowEvents  bool `json:"showEvents"`
}

// WithHexPrefix prepends 0x to addr unless it is already there. Nothing
// else about the address is changed.
func WithHexPrefix(addr string) string {
	if strings.HasPrefix(addr, "0x") {
		return addr
	}
	return "0x" + addr
}

// NormalizeAddress returns addr the way nodes report addresses and object
// ids: 0x followed by 64 lowercase hex digits. "0xAB" and
// "0x00000000000000000000000000000000000000000000000000000000000000ab"
// normalize to the same string. Longer input is only lowercased.
func NormalizeAddress(addr string) string {
	raw := strings.ToLower(addr)
	raw = strings.TrimPrefix(raw, "0x")
	if len(raw) < 64 {
		raw = strings.Repeat("0", 64-len(raw)) + raw
	}
	return "0x" + raw
}
