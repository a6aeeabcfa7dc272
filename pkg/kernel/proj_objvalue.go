package kernel

import (
	"fmt"
	"strings"
)

type Email string

// NewEmail trims and lowercases an address so lookups are case-insensitive
func NewEmail(raw string) Email { return Email(strings.ToLower(strings.TrimSpace(raw))) }
func (e Email) String() string  { return string(e) }
func (e Email) IsEmpty() bool   { return string(e) == "" }

// Role is the subject type carried by an access token
type Role string

const (
	RoleUser    Role = "USER"
	RoleCompany Role = "COMPANY"
)

var RoleValues = []Role{RoleUser, RoleCompany}

// FileSize renders a byte count the way profiles display it, e.g. "1.25 MB"
func FileSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
