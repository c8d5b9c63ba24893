package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestorpro/gestor-api/pkg/fiscal"
)

// CPF válido com pontuação padrão.
func TestValidateTaxID_CPFValido(t *testing.T) {
	assert.NoError(t, fiscal.ValidateTaxID("529.982.247-25"))
	assert.NoError(t, fiscal.ValidateTaxID("52998224725"))
}

func TestValidateTaxID_CPFDigitoErrado(t *testing.T) {
	assert.Error(t, fiscal.ValidateTaxID("529.982.247-24"),
		"CPF com dígito verificador trocado deve ser rejeitado")
}

func TestValidateTaxID_CPFDigitosIguais(t *testing.T) {
	assert.Error(t, fiscal.ValidateTaxID("111.111.111-11"))
}

// CNPJ válido (matriz de teste clássica).
func TestValidateTaxID_CNPJValido(t *testing.T) {
	assert.NoError(t, fiscal.ValidateTaxID("11.222.333/0001-81"))
	assert.NoError(t, fiscal.ValidateTaxID("11222333000181"))
}

func TestValidateTaxID_CNPJDigitoErrado(t *testing.T) {
	assert.Error(t, fiscal.ValidateTaxID("11.222.333/0001-80"))
}

func TestValidateTaxID_TamanhoInvalido(t *testing.T) {
	assert.Error(t, fiscal.ValidateTaxID(""))
	assert.Error(t, fiscal.ValidateTaxID("123"))
	assert.Error(t, fiscal.ValidateTaxID("123456789012"), "12 dígitos não é CPF nem CNPJ")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "11222333000181", fiscal.Normalize("11.222.333/0001-81"))
	assert.Equal(t, "52998224725", fiscal.Normalize("529.982.247-25"))
}
