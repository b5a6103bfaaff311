// Package br implementa validaciones de documentos y datos de contacto
// brasileños (CPF, teléfono con DDD) usadas por el registro de clientes.
package br

import (
	"fmt"
	"strconv"
	"unicode"
)

// CleanCPF elimina todo lo que no sea dígito (puntos, guiones, espacios).
func CleanCPF(cpf string) string {
	return string(extractDigits(cpf))
}

// ValidateCPF valida un CPF por sus dos dígitos verificadores (módulo 11).
// Acepta el CPF con o sin máscara ("123.456.789-09" o "12345678909").
// CPFs con los 11 dígitos iguales se rechazan aunque el cálculo cierre.
func ValidateCPF(cpf string) error {
	digits := extractDigits(cpf)
	if len(digits) != 11 {
		return fmt.Errorf("br: CPF debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return fmt.Errorf("br: CPF con todos los dígitos iguales es inválido")
	}
	if d := checkDigit(digits[:9], 10); d != digits[9] {
		return fmt.Errorf("br: primer dígito verificador del CPF inválido: esperado %c, recibido %c", d, digits[9])
	}
	if d := checkDigit(digits[:10], 11); d != digits[10] {
		return fmt.Errorf("br: segundo dígito verificador del CPF inválido: esperado %c, recibido %c", d, digits[10])
	}
	return nil
}

// checkDigit calcula un dígito verificador del CPF: suma ponderada con
// pesos descendentes desde startWeight, luego (suma*10 % 11) % 10.
func checkDigit(digits []byte, startWeight int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * (startWeight - i)
	}
	return byte('0' + (sum*10%11)%10)
}

// CleanPhone elimina todo lo que no sea dígito del teléfono.
func CleanPhone(phone string) string {
	return string(extractDigits(phone))
}

// ValidatePhone valida un teléfono brasileño: 10 dígitos (fijo) u 11
// (celular), con DDD entre 11 y 99.
func ValidatePhone(phone string) error {
	digits := extractDigits(phone)
	if len(digits) != 10 && len(digits) != 11 {
		return fmt.Errorf("br: teléfono debe tener 10 u 11 dígitos, se encontraron %d", len(digits))
	}
	ddd, _ := strconv.Atoi(string(digits[:2]))
	if ddd < 11 || ddd > 99 {
		return fmt.Errorf("br: DDD %d fuera de rango (11-99)", ddd)
	}
	return nil
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
