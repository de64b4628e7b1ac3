// Package pixcode builds static Pix "copia e cola" payloads in the
// EMV merchant-presented QR format used by the Brazilian instant
// payment network.
package pixcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	currencyBRL = "986"
	countryBR   = "BR"

	maxTxIDLen = 25
	maxNameLen = 25
	maxCityLen = 15
)

// Visually unambiguous alphabet for generated transaction ids: no
// 0/O, 1/I/l.
const txidAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789abcdefghjkmnpqrstuvwxyz"

var txidClean = regexp.MustCompile(`[^0-9A-Za-z\-_.]`)

// Builder produces payloads for one receiving account.
type Builder struct {
	ReceiverName string
	ReceiverCity string
}

// Build assembles the full EMV payload for a Pix charge. key is the
// receiver's Pix key, amount the charge value, txid an optional
// reference (usually the invoice number) echoed back by the payer's
// bank statement.
func (b Builder) Build(key string, amount decimal.Decimal, txid string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("pix key is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}
	if b.ReceiverName == "" || b.ReceiverCity == "" {
		return "", fmt.Errorf("receiver name and city are required")
	}

	txid = txidClean.ReplaceAllString(txid, "")
	if len(txid) > maxTxIDLen {
		txid = txid[:maxTxIDLen]
	}

	var p strings.Builder
	p.WriteString(tlv("00", "01"))
	p.WriteString(tlv("26", tlv("00", "BR.GOV.BCB.PIX")+tlv("01", key)))
	p.WriteString(tlv("52", "0000"))
	p.WriteString(tlv("53", currencyBRL))
	p.WriteString(tlv("54", amount.StringFixed(2)))
	p.WriteString(tlv("58", countryBR))
	p.WriteString(tlv("59", truncate(b.ReceiverName, maxNameLen)))
	p.WriteString(tlv("60", truncate(b.ReceiverCity, maxCityLen)))
	if txid != "" {
		p.WriteString(tlv("62", tlv("05", txid)))
	}

	payload := p.String()
	payload += tlv("63", crc16(payload+"6304"))
	return payload, nil
}

// RandomTxID generates a 10-character transaction id.
func RandomTxID() string {
	var b strings.Builder
	max := big.NewInt(int64(len(txidAlphabet)))
	for i := 0; i < 10; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed character rather than
			// aborting a QR render.
			b.WriteByte(txidAlphabet[0])
			continue
		}
		b.WriteByte(txidAlphabet[n.Int64()])
	}
	return b.String()
}

// tlv encodes one tag-length-value element. The length counts bytes,
// not runes.
func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// crc16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum
// the EMV QR spec mandates, as four uppercase hex digits.
func crc16(payload string) string {
	crc := uint16(0xFFFF)
	for i := 0; i < len(payload); i++ {
		crc ^= uint16(payload[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
