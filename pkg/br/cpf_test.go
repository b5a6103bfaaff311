package br_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martesys/petshop-api/pkg/br"
)

// CPFs con dígitos verificadores correctos (generados por el algoritmo oficial).
func TestValidateCPF_Validos(t *testing.T) {
	for _, cpf := range []string{
		"529.982.247-25",
		"52998224725",
		"111.444.777-35",
	} {
		assert.NoError(t, br.ValidateCPF(cpf), "CPF %s debe ser válido", cpf)
	}
}

func TestValidateCPF_DigitoVerificadorIncorrecto(t *testing.T) {
	err := br.ValidateCPF("529.982.247-26")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dígito verificador")
}

func TestValidateCPF_TodosLosDigitosIguales(t *testing.T) {
	// 111.111.111-11 cierra el cálculo módulo 11 pero es un CPF inválido.
	assert.Error(t, br.ValidateCPF("111.111.111-11"))
	assert.Error(t, br.ValidateCPF("00000000000"))
}

func TestValidateCPF_LargoIncorrecto(t *testing.T) {
	assert.Error(t, br.ValidateCPF("1234567890"))
	assert.Error(t, br.ValidateCPF(""))
}

func TestCleanCPF(t *testing.T) {
	assert.Equal(t, "52998224725", br.CleanCPF("529.982.247-25"))
}

func TestValidatePhone(t *testing.T) {
	// Fijo (10 dígitos) y celular (11 dígitos) con DDD válido.
	assert.NoError(t, br.ValidatePhone("(27) 3333-4444"))
	assert.NoError(t, br.ValidatePhone("(11) 98765-4321"))

	// DDD fuera de rango y largos inválidos.
	assert.Error(t, br.ValidatePhone("(01) 98765-4321"))
	assert.Error(t, br.ValidatePhone("12345"))
}
