package form

import (
	"net/url"
	"testing"

	"lotadmin/internal/registry/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerValues() url.Values {
	return url.Values{
		"customerCode":          {" C-1 "},
		"customerName":          {"Acme"},
		"customerInn":           {"7701234567"},
		"customerKpp":           {"770101001"},
		"customerLegalAddress":  {"Legal"},
		"customerPostalAddress": {"Postal"},
		"customerEmail":         {"acme@example.test"},
		"customerCodeMain":      {""},
		"isOrganization":        {"on"},
	}
}

func TestNewCustomerFormDefaults(t *testing.T) {
	f := NewCustomerForm()
	assert.True(t, f.IsOrganization)
	assert.Empty(t, f.CustomerCodeMain)
}

func TestParseCustomerForm(t *testing.T) {
	f := ParseCustomerForm(validCustomerValues())
	assert.Equal(t, "C-1", f.CustomerCode)
	assert.True(t, f.IsOrganization)
	assert.Nil(t, f.Validate())

	values := validCustomerValues()
	values.Del("isOrganization")
	assert.False(t, ParseCustomerForm(values).IsOrganization)
}

func TestCustomerFormValidate(t *testing.T) {
	t.Run("empty form reports every required field", func(t *testing.T) {
		errs := CustomerForm{}.Validate()
		require.NotNil(t, errs)
		assert.Equal(t, "Код обязателен", errs["customerCode"])
		assert.Equal(t, "Название обязательно", errs["customerName"])
		assert.Equal(t, "ИНН обязателен", errs["customerInn"])
		assert.Equal(t, "КПП обязателен", errs["customerKpp"])
		assert.Equal(t, "Юр. адрес обязателен", errs["customerLegalAddress"])
		assert.Equal(t, "Почтовый адрес обязателен", errs["customerPostalAddress"])
		assert.Equal(t, "Email обязателен", errs["customerEmail"])
		assert.False(t, errs.Has("isOrganization"))
		assert.False(t, errs.Has("customerCodeMain"))
	})

	t.Run("bad email", func(t *testing.T) {
		values := validCustomerValues()
		values.Set("customerEmail", "not-an-email")
		errs := ParseCustomerForm(values).Validate()
		assert.Equal(t, Errors{"customerEmail": "Неверный email"}, errs)
	})

	t.Run("parent equal to own code", func(t *testing.T) {
		values := validCustomerValues()
		values.Set("customerCodeMain", "C-1")
		errs := ParseCustomerForm(values).Validate()
		assert.Equal(t, "Основной код не может совпадать с кодом клиента", errs["customerCodeMain"])
	})
}

func TestCustomerFormToRequest(t *testing.T) {
	f := ParseCustomerForm(validCustomerValues())
	req := f.ToRequest()
	assert.Nil(t, req.CustomerCodeMain)
	require.NotNil(t, req.IsOrganization)
	assert.True(t, *req.IsOrganization)
	assert.NoError(t, req.Validate())

	f.CustomerCodeMain = "HEAD"
	f.IsOrganization = false
	req = f.ToRequest()
	require.NotNil(t, req.CustomerCodeMain)
	assert.Equal(t, "HEAD", *req.CustomerCodeMain)
	assert.False(t, *req.IsOrganization)
}

func TestCustomerFormFrom(t *testing.T) {
	parent := "HEAD"
	f := CustomerFormFrom(&model.Customer{
		CustomerID:       4,
		CustomerCode:     "C",
		CustomerEmail:    "c@example.test",
		CustomerCodeMain: &parent,
		IsOrganization:   false,
		IsPerson:         true,
	})
	assert.Equal(t, "C", f.CustomerCode)
	assert.Equal(t, "HEAD", f.CustomerCodeMain)
	assert.False(t, f.IsOrganization)

	f = CustomerFormFrom(&model.Customer{CustomerCode: "D", IsOrganization: true})
	assert.Empty(t, f.CustomerCodeMain)
}

func TestCustomerFormAPIErrors(t *testing.T) {
	errs := CustomerForm{}.APIErrors(map[string]string{"customerEmail": "email", "customerInn": "max"})
	assert.Equal(t, "Неверный email", errs["customerEmail"])
	assert.Equal(t, DefaultMessage, errs["customerInn"])

	assert.Nil(t, CustomerForm{}.APIErrors(nil))
}
