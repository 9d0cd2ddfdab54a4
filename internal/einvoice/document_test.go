package einvoice

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleProfile() company.Profile {
	return company.Profile{
		Name:  "BillPro Traders",
		GSTIN: "27AAAAA0000A1Z5",
		Address: company.Address{
			Line1:     "12 Market Road",
			City:      "Pune",
			Pincode:   "411001",
			StateCode: "27",
		},
		Contact: company.Contact{
			Phone: "9822000000",
			Email: "billing@billpro.in",
		},
	}
}

func sampleInvoice() *billingdomain.Invoice {
	return &billingdomain.Invoice{
		InvoiceNumber: "INV/2425/0007",
		InvoiceDate:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		IsGSTInvoice:  true,
		Subtotal:      dec("1000"),
		CGSTAmount:    dec("90"),
		SGSTAmount:    dec("90"),
		TaxAmount:     dec("180"),
		TotalAmount:   dec("1180"),
		PaymentMode:   "CASH",
		AmountPaid:    dec("1180"),
		Items: []billingdomain.InvoiceItem{
			{
				Description:   "Notebook",
				HSNCode:       "4802",
				Quantity:      dec("2"),
				Unit:          "PCS",
				Rate:          dec("500"),
				TaxableAmount: dec("1000"),
				GSTPercent:    dec("18"),
				CGSTAmount:    dec("90"),
				SGSTAmount:    dec("90"),
				TotalAmount:   dec("1180"),
			},
		},
	}
}

const goldenDocument = `{
  "Version": "1.1",
  "TranDtls": {
    "TaxSch": "GST",
    "SupTyp": "B2B",
    "RegRev": "N",
    "EcmGstin": null,
    "IgstOnIntra": "N"
  },
  "DocDtls": {
    "Typ": "INV",
    "No": "INV/2425/0007",
    "Dt": "15/07/2024"
  },
  "SellerDtls": {
    "Gstin": "27AAAAA0000A1Z5",
    "LglNm": "BillPro Traders",
    "TrdNm": "BillPro Traders",
    "Addr1": "12 Market Road",
    "Addr2": "",
    "Loc": "Pune",
    "Pin": 411001,
    "Stcd": "27",
    "Ph": "9822000000",
    "Em": "billing@billpro.in"
  },
  "BuyerDtls": {
    "Gstin": "URP",
    "LglNm": "Sharma Traders",
    "TrdNm": "Sharma Traders",
    "Pos": "27",
    "Addr1": "",
    "Addr2": "",
    "Loc": "",
    "Pin": 0,
    "Stcd": "27",
    "Ph": "",
    "Em": ""
  },
  "ItemList": [
    {
      "SlNo": "1",
      "PrdDesc": "Notebook",
      "IsServc": "N",
      "HsnCd": "4802",
      "Barcde": null,
      "Qty": 2,
      "FreeQty": 0,
      "Unit": "PCS",
      "UnitPrice": 500,
      "TotAmt": 1000,
      "Discount": 0,
      "PreTaxVal": 0,
      "AssAmt": 1000,
      "GstRt": 18,
      "IgstAmt": 0,
      "CgstAmt": 90,
      "SgstAmt": 90,
      "CesRt": 0,
      "CesAmt": 0,
      "CesNonAdvlAmt": 0,
      "StateCesRt": 0,
      "StateCesAmt": 0,
      "StateCesNonAdvlAmt": 0,
      "OthChrg": 0,
      "TotItemVal": 1180
    }
  ],
  "ValDtls": {
    "AssVal": 1000,
    "CgstVal": 90,
    "SgstVal": 90,
    "IgstVal": 0,
    "CesVal": 0,
    "StCesVal": 0,
    "Discount": 0,
    "OthChrg": 0,
    "RndOffAmt": 0,
    "TotInvVal": 1180,
    "TotInvValFc": 0
  },
  "PayDtls": {
    "Nm": "Sharma Traders",
    "Accdet": null,
    "Mode": "CASH",
    "Fininsbr": null,
    "Payterm": null,
    "Payinstr": null,
    "Crtrn": null,
    "Dirdr": null,
    "Crday": 0,
    "Paidamt": 1180,
    "Paymtdue": 0
  },
  "EwbDtls": null,
  "RefDtls": null
}`

func TestBuild_GoldenJSON(t *testing.T) {
	party := &partydomain.Party{
		Type:      partydomain.PartyCustomer,
		Name:      "Sharma Traders",
		StateCode: "27",
	}

	doc := Build(sampleInvoice(), party, sampleProfile())
	payload, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, goldenDocument, string(payload))
}

func TestBuild_RegisteredInterstateBuyer(t *testing.T) {
	gstin := "29BBBBB1111B1Z6"
	phone := "9900112233"
	party := &partydomain.Party{
		Type:      partydomain.PartyCustomer,
		Name:      "Udupi Stores",
		GSTIN:     &gstin,
		Phone:     &phone,
		StateCode: "29",
	}
	inv := sampleInvoice()
	inv.IsIGST = true

	doc := Build(inv, party, sampleProfile())
	assert.Equal(t, "Y", doc.TranDtls.IgstOnIntra)
	assert.Equal(t, gstin, doc.BuyerDtls.Gstin)
	assert.Equal(t, "29", doc.BuyerDtls.Pos)
	assert.Equal(t, phone, doc.BuyerDtls.Ph)
}

func TestBuild_BuyerStateFallsBackToSeller(t *testing.T) {
	party := &partydomain.Party{Type: partydomain.PartyCustomer, Name: "Walk-in"}

	doc := Build(sampleInvoice(), party, sampleProfile())
	assert.Equal(t, "27", doc.BuyerDtls.Pos)
	assert.Equal(t, "URP", doc.BuyerDtls.Gstin)
}

func TestMapUnitCode(t *testing.T) {
	assert.Equal(t, "KGS", mapUnitCode("kg"))
	assert.Equal(t, "MLT", mapUnitCode("ML"))
	assert.Equal(t, "PRS", mapUnitCode("PAIR"))
	assert.Equal(t, "PCS", mapUnitCode(""))
	assert.Equal(t, "OTH", mapUnitCode("BUNDLE"))
}

func TestGenerate_WritesFileAndMarksInvoice(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&billingdomain.Invoice{},
		&billingdomain.InvoiceItem{},
		&partydomain.Party{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	party := partydomain.Party{
		ID:        node.Generate(),
		Type:      partydomain.PartyCustomer,
		Name:      "Sharma Traders",
		StateCode: "27",
		Active:    true,
	}
	require.NoError(t, db.Create(&party).Error)

	inv := sampleInvoice()
	inv.ID = node.Generate()
	inv.FinancialYearID = node.Generate()
	inv.PartyID = party.ID
	inv.Status = billingdomain.DocActive
	for i := range inv.Items {
		inv.Items[i].ID = node.Generate()
		inv.Items[i].InvoiceID = inv.ID
		inv.Items[i].ProductID = node.Generate()
	}
	require.NoError(t, db.Create(inv).Error)

	profilePath := t.TempDir() + "/company.json"
	require.NoError(t, os.WriteFile(profilePath, []byte(`{"name":"BillPro Traders","gstin":"27AAAAA0000A1Z5","address":{"state_code":"27"}}`), 0o644))
	store, err := company.NewStore(profilePath, zap.NewNop())
	require.NoError(t, err)

	svc := NewService(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   clock.NewFakeClock(time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)),
		Config:  &config.Config{EInvoiceDir: t.TempDir()},
		Company: store,
	})

	path, err := svc.Generate(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Contains(t, path, "einvoice_INV_2425_0007_20240715_103000.json")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "INV/2425/0007", doc.DocDtls.No)

	var got billingdomain.Invoice
	require.NoError(t, db.First(&got, "id = ?", inv.ID).Error)
	assert.True(t, got.EInvoiceGenerated)
	require.NotNil(t, got.EInvoiceJSONPath)
	assert.Equal(t, path, *got.EInvoiceJSONPath)
	assert.JSONEq(t, string(raw), string(got.EInvoicePayload))
}

func TestGenerate_RejectsNonGSTInvoice(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&billingdomain.Invoice{},
		&billingdomain.InvoiceItem{},
		&partydomain.Party{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	inv := sampleInvoice()
	inv.ID = node.Generate()
	inv.FinancialYearID = node.Generate()
	inv.PartyID = node.Generate()
	inv.IsGSTInvoice = false
	inv.Items = nil
	require.NoError(t, db.Create(inv).Error)

	store, err := company.NewStore(t.TempDir()+"/missing.json", zap.NewNop())
	require.NoError(t, err)

	svc := NewService(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   clock.SystemClock{},
		Config:  &config.Config{EInvoiceDir: t.TempDir()},
		Company: store,
	})

	_, err = svc.Generate(context.Background(), inv.ID)
	assert.ErrorIs(t, err, ErrNotGSTInvoice)
}
