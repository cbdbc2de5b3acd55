package soap

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestPasswordDigest(t *testing.T) {
	// Known vector: Base64(SHA1(nonce + created + password))
	creds := &Credentials{Username: "admin", Password: "watchword"}
	nonce := []byte("0123456789abcdef")
	created := "2024-05-01T12:00:00Z"

	s := newSecurityAt(creds, nonce, created)

	if s.Token.Password.Value != "G7I/iftpW+OR3aalLiL8UmusQCU=" {
		t.Errorf("Password digest = %s, want G7I/iftpW+OR3aalLiL8UmusQCU=", s.Token.Password.Value)
	}

	if s.Token.Nonce.Value != "MDEyMzQ1Njc4OWFiY2RlZg==" {
		t.Errorf("Nonce = %s, want MDEyMzQ1Njc4OWFiY2RlZg==", s.Token.Nonce.Value)
	}

	if s.Token.Created != created {
		t.Errorf("Created = %s, want %s", s.Token.Created, created)
	}

	if s.Token.Username != "admin" {
		t.Errorf("Username = %s, want admin", s.Token.Username)
	}

	if s.Token.Password.Type != passwordDigestType {
		t.Errorf("Password type = %s, want %s", s.Token.Password.Type, passwordDigestType)
	}
}

func TestNewSecurityFreshNonce(t *testing.T) {
	creds := &Credentials{Username: "admin", Password: "watchword"}

	first := newSecurity(creds)
	second := newSecurity(creds)

	if first.Token.Nonce.Value == second.Token.Nonce.Value {
		t.Error("Consecutive security headers should carry distinct nonces")
	}
}

func TestSecurityHeaderMarshals(t *testing.T) {
	creds := &Credentials{Username: "admin", Password: "watchword"}

	data, err := xml.Marshal(newSecurity(creds))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"<wsse:Security",
		"<wsse:UsernameToken>",
		"<wsse:Username>admin</wsse:Username>",
		"<wsu:Created>",
		passwordDigestType,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Security header missing %q in:\n%s", want, out)
		}
	}
}
