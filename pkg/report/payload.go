package report

import (
	"math"

	"garminexport/pkg/connect"
)

// Decoded JSON numbers are float64; these helpers keep the payload
// digging in one place. Missing keys and wrong types yield zero values.

func num(p connect.Payload, key string) float64 {
	v, _ := p[key].(float64)
	return v
}

func str(p connect.Payload, key string) string {
	v, _ := p[key].(string)
	return v
}

func child(p connect.Payload, key string) connect.Payload {
	v, _ := p[key].(map[string]any)
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
