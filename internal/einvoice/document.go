// Package einvoice assembles the offline GST e-invoice JSON for a
// sales invoice. It produces the regulatory document structure only;
// IRN registration against the government API is out of scope.
package einvoice

import (
	"strconv"
	"strings"

	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
)

// TranDtls is the transaction block. IgstOnIntra is "Y" only for the
// unusual IGST-on-intrastate case, which this system never produces,
// so it mirrors the interstate flag.
type TranDtls struct {
	TaxSch      string  `json:"TaxSch"`
	SupTyp      string  `json:"SupTyp"`
	RegRev      string  `json:"RegRev"`
	EcmGstin    *string `json:"EcmGstin"`
	IgstOnIntra string  `json:"IgstOnIntra"`
}

type DocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"` // DD/MM/YYYY
}

type SellerDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	TrdNm string `json:"TrdNm"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph"`
	Em    string `json:"Em"`
}

type BuyerDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	TrdNm string `json:"TrdNm"`
	Pos   string `json:"Pos"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph"`
	Em    string `json:"Em"`
}

type Item struct {
	SlNo               string  `json:"SlNo"`
	PrdDesc            string  `json:"PrdDesc"`
	IsServc            string  `json:"IsServc"`
	HsnCd              string  `json:"HsnCd"`
	Barcde             *string `json:"Barcde"`
	Qty                float64 `json:"Qty"`
	FreeQty            float64 `json:"FreeQty"`
	Unit               string  `json:"Unit"`
	UnitPrice          float64 `json:"UnitPrice"`
	TotAmt             float64 `json:"TotAmt"`
	Discount           float64 `json:"Discount"`
	PreTaxVal          float64 `json:"PreTaxVal"`
	AssAmt             float64 `json:"AssAmt"`
	GstRt              float64 `json:"GstRt"`
	IgstAmt            float64 `json:"IgstAmt"`
	CgstAmt            float64 `json:"CgstAmt"`
	SgstAmt            float64 `json:"SgstAmt"`
	CesRt              float64 `json:"CesRt"`
	CesAmt             float64 `json:"CesAmt"`
	CesNonAdvlAmt      float64 `json:"CesNonAdvlAmt"`
	StateCesRt         float64 `json:"StateCesRt"`
	StateCesAmt        float64 `json:"StateCesAmt"`
	StateCesNonAdvlAmt float64 `json:"StateCesNonAdvlAmt"`
	OthChrg            float64 `json:"OthChrg"`
	TotItemVal         float64 `json:"TotItemVal"`
}

type ValDtls struct {
	AssVal      float64 `json:"AssVal"`
	CgstVal     float64 `json:"CgstVal"`
	SgstVal     float64 `json:"SgstVal"`
	IgstVal     float64 `json:"IgstVal"`
	CesVal      float64 `json:"CesVal"`
	StCesVal    float64 `json:"StCesVal"`
	Discount    float64 `json:"Discount"`
	OthChrg     float64 `json:"OthChrg"`
	RndOffAmt   float64 `json:"RndOffAmt"`
	TotInvVal   float64 `json:"TotInvVal"`
	TotInvValFc float64 `json:"TotInvValFc"`
}

type PayDtls struct {
	Nm       string  `json:"Nm"`
	Accdet   *string `json:"Accdet"`
	Mode     string  `json:"Mode"`
	Fininsbr *string `json:"Fininsbr"`
	Payterm  *string `json:"Payterm"`
	Payinstr *string `json:"Payinstr"`
	Crtrn    *string `json:"Crtrn"`
	Dirdr    *string `json:"Dirdr"`
	Crday    int     `json:"Crday"`
	Paidamt  float64 `json:"Paidamt"`
	Paymtdue float64 `json:"Paymtdue"`
}

// Document is the complete e-invoice payload. EwbDtls and RefDtls are
// always serialized as null; e-way bills are not handled here.
type Document struct {
	Version    string     `json:"Version"`
	TranDtls   TranDtls   `json:"TranDtls"`
	DocDtls    DocDtls    `json:"DocDtls"`
	SellerDtls SellerDtls `json:"SellerDtls"`
	BuyerDtls  BuyerDtls  `json:"BuyerDtls"`
	ItemList   []Item     `json:"ItemList"`
	ValDtls    ValDtls    `json:"ValDtls"`
	PayDtls    PayDtls    `json:"PayDtls"`
	EwbDtls    *struct{}  `json:"EwbDtls"`
	RefDtls    *struct{}  `json:"RefDtls"`
}

// Build assembles the document from the invoice, its buyer and the
// seller profile. An unregistered buyer gets the "URP" GSTIN marker.
func Build(inv *billingdomain.Invoice, party *partydomain.Party, profile company.Profile) *Document {
	igstOnIntra := "N"
	if inv.IsIGST {
		igstOnIntra = "Y"
	}

	buyerGstin := "URP"
	if party.GSTIN != nil && *party.GSTIN != "" {
		buyerGstin = *party.GSTIN
	}
	pos := party.StateCode
	if pos == "" {
		pos = profile.Address.StateCode
	}

	items := make([]Item, 0, len(inv.Items))
	for i, line := range inv.Items {
		items = append(items, Item{
			SlNo:       strconv.Itoa(i + 1),
			PrdDesc:    line.Description,
			IsServc:    "N",
			HsnCd:      line.HSNCode,
			Qty:        line.Quantity.InexactFloat64(),
			Unit:       mapUnitCode(line.Unit),
			UnitPrice:  line.Rate.InexactFloat64(),
			TotAmt:     line.Quantity.Mul(line.Rate).InexactFloat64(),
			Discount:   line.DiscountAmount.InexactFloat64(),
			AssAmt:     line.TaxableAmount.InexactFloat64(),
			GstRt:      line.GSTPercent.InexactFloat64(),
			IgstAmt:    line.IGSTAmount.InexactFloat64(),
			CgstAmt:    line.CGSTAmount.InexactFloat64(),
			SgstAmt:    line.SGSTAmount.InexactFloat64(),
			TotItemVal: line.TotalAmount.InexactFloat64(),
		})
	}

	return &Document{
		Version: "1.1",
		TranDtls: TranDtls{
			TaxSch:      "GST",
			SupTyp:      "B2B",
			RegRev:      "N",
			IgstOnIntra: igstOnIntra,
		},
		DocDtls: DocDtls{
			Typ: "INV",
			No:  inv.InvoiceNumber,
			Dt:  inv.InvoiceDate.Format("02/01/2006"),
		},
		SellerDtls: SellerDtls{
			Gstin: profile.GSTIN,
			LglNm: profile.Name,
			TrdNm: profile.Name,
			Addr1: profile.Address.Line1,
			Addr2: profile.Address.Line2,
			Loc:   profile.Address.City,
			Pin:   pinToInt(profile.Address.Pincode),
			Stcd:  profile.Address.StateCode,
			Ph:    profile.Contact.Phone,
			Em:    profile.Contact.Email,
		},
		BuyerDtls: BuyerDtls{
			Gstin: buyerGstin,
			LglNm: party.Name,
			TrdNm: party.Name,
			Pos:   pos,
			Addr1: strOrEmpty(party.Address),
			Loc:   strOrEmpty(party.City),
			Pin:   pinToInt(strOrEmpty(party.Pincode)),
			Stcd:  party.StateCode,
			Ph:    strOrEmpty(party.Phone),
			Em:    strOrEmpty(party.Email),
		},
		ItemList: items,
		ValDtls: ValDtls{
			AssVal:    inv.Subtotal.InexactFloat64(),
			CgstVal:   inv.CGSTAmount.InexactFloat64(),
			SgstVal:   inv.SGSTAmount.InexactFloat64(),
			IgstVal:   inv.IGSTAmount.InexactFloat64(),
			Discount:  inv.DiscountAmount.InexactFloat64(),
			RndOffAmt: inv.RoundOff.InexactFloat64(),
			TotInvVal: inv.TotalAmount.InexactFloat64(),
		},
		PayDtls: PayDtls{
			Nm:       party.Name,
			Mode:     string(inv.PaymentMode),
			Paidamt:  inv.AmountPaid.InexactFloat64(),
			Paymtdue: inv.AmountDue.InexactFloat64(),
		},
	}
}

var unitCodes = map[string]string{
	"PCS":  "PCS",
	"NOS":  "NOS",
	"KG":   "KGS",
	"KGS":  "KGS",
	"GM":   "GMS",
	"GMS":  "GMS",
	"LTR":  "LTR",
	"ML":   "MLT",
	"MTR":  "MTR",
	"CM":   "CMS",
	"BOX":  "BOX",
	"PKT":  "PAC",
	"SET":  "SET",
	"DOZ":  "DOZ",
	"PAIR": "PRS",
}

// mapUnitCode maps a catalog unit to its GST unit code, "OTH" when
// unmapped.
func mapUnitCode(unit string) string {
	if unit == "" {
		unit = "PCS"
	}
	if code, ok := unitCodes[strings.ToUpper(unit)]; ok {
		return code
	}
	return "OTH"
}

func pinToInt(pin string) int {
	n, err := strconv.Atoi(strings.TrimSpace(pin))
	if err != nil {
		return 0
	}
	return n
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
