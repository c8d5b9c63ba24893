// Package fiscal valida documentos fiscais brasileiros (CPF e CNPJ) pelo
// algoritmo módulo 11 dos dígitos verificadores.
package fiscal

import (
	"fmt"
	"unicode"
)

// Pesos do primeiro e segundo dígito verificador do CNPJ, para os 12 e 13
// primeiros dígitos respectivamente.
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateTaxID aceita CPF (11 dígitos) ou CNPJ (14 dígitos), com ou sem
// pontuação, e valida os dígitos verificadores.
func ValidateTaxID(taxID string) error {
	digits := extractDigits(taxID)
	switch len(digits) {
	case 11:
		return validateCPF(digits)
	case 14:
		return validateCNPJ(digits)
	}
	return fmt.Errorf("fiscal: documento deve ter 11 (CPF) ou 14 (CNPJ) dígitos, recebidos %d", len(digits))
}

// Normalize devolve só os dígitos do documento, sem pontuação.
func Normalize(taxID string) string {
	return string(extractDigits(taxID))
}

func validateCPF(digits []byte) error {
	if allEqual(digits) {
		return fmt.Errorf("fiscal: CPF com todos os dígitos iguais é inválido")
	}
	// Primeiro verificador: pesos 10..2 sobre os 9 primeiros dígitos.
	if check := cpfDigit(digits[:9], 10); digits[9] != check {
		return fmt.Errorf("fiscal: primeiro dígito verificador do CPF inválido: esperado %c, recebido %c", check, digits[9])
	}
	// Segundo verificador: pesos 11..2 sobre os 10 primeiros dígitos.
	if check := cpfDigit(digits[:10], 11); digits[10] != check {
		return fmt.Errorf("fiscal: segundo dígito verificador do CPF inválido: esperado %c, recebido %c", check, digits[10])
	}
	return nil
}

func cpfDigit(base []byte, firstWeight int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * (firstWeight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func validateCNPJ(digits []byte) error {
	if allEqual(digits) {
		return fmt.Errorf("fiscal: CNPJ com todos os dígitos iguais é inválido")
	}
	if check := mod11(digits[:12], cnpjWeights1[:]); digits[12] != check {
		return fmt.Errorf("fiscal: primeiro dígito verificador do CNPJ inválido: esperado %c, recebido %c", check, digits[12])
	}
	if check := mod11(digits[:13], cnpjWeights2[:]); digits[13] != check {
		return fmt.Errorf("fiscal: segundo dígito verificador do CNPJ inválido: esperado %c, recebido %c", check, digits[13])
	}
	return nil
}

func mod11(base []byte, weights []int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
