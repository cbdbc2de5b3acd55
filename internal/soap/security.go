package soap

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"time"
)

// WS-Security namespaces and type identifiers
const (
	wsseNS = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	wsuNS  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"

	passwordDigestType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	base64EncodingType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

// security is a WS-Security header carrying a UsernameToken with
// password digest authentication
type security struct {
	XMLName xml.Name `xml:"wsse:Security"`
	WsseNS  string   `xml:"xmlns:wsse,attr"`
	WsuNS   string   `xml:"xmlns:wsu,attr"`
	Token   usernameToken
}

type usernameToken struct {
	XMLName  xml.Name `xml:"wsse:UsernameToken"`
	Username string   `xml:"wsse:Username"`
	Password struct {
		Type  string `xml:"Type,attr"`
		Value string `xml:",chardata"`
	} `xml:"wsse:Password"`
	Nonce struct {
		EncodingType string `xml:"EncodingType,attr"`
		Value        string `xml:",chardata"`
	} `xml:"wsse:Nonce"`
	Created string `xml:"wsu:Created"`
}

// newSecurity builds a security header with a fresh nonce for one request
func newSecurity(creds *Credentials) *security {
	nonce := make([]byte, 16)
	_, _ = rand.Read(nonce)
	created := time.Now().UTC().Format(time.RFC3339)

	return newSecurityAt(creds, nonce, created)
}

// newSecurityAt builds a security header from explicit nonce and creation
// time, computing the password digest Base64(SHA1(nonce + created + password)).
func newSecurityAt(creds *Credentials, nonce []byte, created string) *security {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(creds.Password))
	digest := base64.StdEncoding.EncodeToString(h.Sum(nil))

	s := &security{
		WsseNS: wsseNS,
		WsuNS:  wsuNS,
	}
	s.Token.Username = creds.Username
	s.Token.Password.Type = passwordDigestType
	s.Token.Password.Value = digest
	s.Token.Nonce.EncodingType = base64EncodingType
	s.Token.Nonce.Value = base64.StdEncoding.EncodeToString(nonce)
	s.Token.Created = created
	return s
}
