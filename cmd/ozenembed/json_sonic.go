//go:build sonic

package main

import (
	"github.com/bytedance/sonic"
)

// also handed to imroc/req
var jsonMarshal = sonic.Marshal
var jsonUnmarshal = sonic.Unmarshal
var jsonMarshalIndent = sonic.MarshalIndent
