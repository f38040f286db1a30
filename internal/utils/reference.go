package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// ReferencePrefix - префикс номеров выплат.
const ReferencePrefix = "PAY-"

var referenceSpace = big.NewInt(1_000_000)

// GenerateReference создаёт номер выплаты вида PAY-<unix><6 случайных цифр><контрольная цифра Луна>.
func GenerateReference(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, referenceSpace)
	if err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}

	body := strconv.FormatInt(now.Unix(), 10) + fmt.Sprintf("%06d", n.Int64())
	return ReferencePrefix + body + strconv.Itoa(LuhnCheckDigit(body)), nil
}

// ValidReference проверяет формат и контрольную цифру номера выплаты.
func ValidReference(ref string) bool {
	digits, ok := strings.CutPrefix(ref, ReferencePrefix)
	if !ok || len(digits) < 8 {
		return false
	}
	return ValidateLuhn(digits)
}
