package card_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/importer/card"
)

func TestCard_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Statement for account 1234",
		"",
		"Date,Description,Merchant,Amount,Currency",
		"2024-03-01,Fuel stop,PTT Station,\"1,250.00\",THB",
		"2024/03/02,Team dinner,Som Tum House,890.50,",
		"02/03/2024,Hotel deposit,Riverside Hotel,120.00,USD",
		// Credits are not expense lines.
		"2024-03-04,Refund,PTT Station,-230.00,THB",
		// Rows with unparseable dates are skipped.
		"pending,Card fee,,25.00,THB",
	}, "\n")

	parser := card.New()

	items, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "2024-03-01", items[0].Date)
	assert.Equal(t, "Fuel stop", items[0].Detail)
	assert.Equal(t, "PTT Station", items[0].Vendor)
	assert.InDelta(t, 1250, items[0].Amount, 0.001)
	assert.Equal(t, "THB", items[0].Currency)
	assert.Equal(t, "Other", items[0].Category)

	// Missing currency defaults to THB.
	assert.Equal(t, "THB", items[1].Currency)
	assert.Equal(t, "2024-03-02", items[1].Date)

	// Day-first dates are accepted.
	assert.Equal(t, "2024-03-02", items[2].Date)
	assert.Equal(t, "USD", items[2].Currency)
}

func TestCard_Parse_HeaderAnywhere(t *testing.T) {
	input := strings.Join([]string{
		"Bank export v2",
		"Generated,2024-03-31",
		"date,description,amount",
		"2024-03-10,Spare parts,450.00",
	}, "\n")

	items, err := card.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Spare parts", items[0].Detail)
}

func TestCard_Parse_NoHeader(t *testing.T) {
	_, err := card.New().Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	assert.Error(t, err)
}

func TestCard_Parse_EmptyBody(t *testing.T) {
	items, err := card.New().Parse(strings.NewReader("Date,Description,Amount\n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}
