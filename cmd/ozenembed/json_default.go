//go:build !sonic

package main

import (
	"github.com/goccy/go-json"
)

// also handed to imroc/req
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal
var jsonMarshalIndent = json.MarshalIndent
