// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sshkeys.
//
// go-sshkeys is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// KeyInfo describes one key of a container or public key file
type KeyInfo struct {
	Index       int    `json:"index"`
	KeyType     string `json:"key_type"`
	Bits        int    `json:"bits,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// ContainerInfo describes a parsed private key container
type ContainerInfo struct {
	Path      string    `json:"path"`
	Cipher    string    `json:"cipher"`
	KDF       string    `json:"kdf"`
	Rounds    uint32    `json:"rounds,omitempty"`
	Encrypted bool      `json:"encrypted"`
	Keys      []KeyInfo `json:"keys"`
}

// PrintContainer prints the structure of a private key container
func (p *Printer) PrintContainer(info *ContainerInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Container: %s\n", info.Path)
		fmt.Fprintf(p.writer, "  Cipher:    %s\n", info.Cipher)
		fmt.Fprintf(p.writer, "  KDF:       %s\n", info.KDF)
		if info.Rounds > 0 {
			fmt.Fprintf(p.writer, "  Rounds:    %d\n", info.Rounds)
		}
		fmt.Fprintf(p.writer, "  Encrypted: %t\n", info.Encrypted)
		fmt.Fprintf(p.writer, "  Keys:      %d\n", len(info.Keys))
		for _, key := range info.Keys {
			p.printKeyInfo(key)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintPublicKeys prints the keys of a public key file
func (p *Printer) PrintPublicKeys(path string, keys []KeyInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"path": path,
			"keys": keys,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Public keys: %s\n", path)
		for _, key := range keys {
			p.printKeyInfo(key)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

func (p *Printer) printKeyInfo(key KeyInfo) {
	fmt.Fprintf(p.writer, "\nKey %d:\n", key.Index)
	fmt.Fprintf(p.writer, "  Type:        %s\n", key.KeyType)
	if key.Bits > 0 {
		fmt.Fprintf(p.writer, "  Bits:        %d\n", key.Bits)
	}
	if key.Fingerprint != "" {
		fmt.Fprintf(p.writer, "  Fingerprint: %s\n", key.Fingerprint)
	}
	if key.Comment != "" {
		fmt.Fprintf(p.writer, "  Comment:     %s\n", key.Comment)
	}
}

// GeneratedInfo describes a freshly generated key pair
type GeneratedInfo struct {
	KeyType     string `json:"key_type"`
	Bits        int    `json:"bits,omitempty"`
	Fingerprint string `json:"fingerprint"`
	PrivatePath string `json:"private_path"`
	PublicPath  string `json:"public_path"`
	Encrypted   bool   `json:"encrypted"`
}

// PrintGenerated prints the result of key generation
func (p *Printer) PrintGenerated(info *GeneratedInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Generated %s key pair\n", info.KeyType)
		if info.Bits > 0 {
			fmt.Fprintf(p.writer, "  Bits:        %d\n", info.Bits)
		}
		fmt.Fprintf(p.writer, "  Fingerprint: %s\n", info.Fingerprint)
		fmt.Fprintf(p.writer, "  Private:     %s\n", info.PrivatePath)
		fmt.Fprintf(p.writer, "  Public:      %s\n", info.PublicPath)
		fmt.Fprintf(p.writer, "  Encrypted:   %t\n", info.Encrypted)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// FingerprintInfo is one line of fingerprint output
type FingerprintInfo struct {
	Bits        int    `json:"bits,omitempty"`
	Fingerprint string `json:"fingerprint"`
	Comment     string `json:"comment,omitempty"`
	KeyType     string `json:"key_type"`
}

// PrintFingerprints prints one line per key, ssh-keygen style
func (p *Printer) PrintFingerprints(fingerprints []FingerprintInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"fingerprints": fingerprints,
		})
	case OutputFormatText:
		for _, fp := range fingerprints {
			comment := fp.Comment
			if comment == "" {
				comment = "no comment"
			}
			fmt.Fprintf(p.writer, "%d %s %s (%s)\n", fp.Bits, fp.Fingerprint, comment, fp.KeyType)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
