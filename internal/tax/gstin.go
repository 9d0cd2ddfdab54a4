package tax

import (
	"fmt"
	"strings"
)

// StateCodes maps GST state codes to state names. Codes 25 and 28 were
// retired when Dadra & Nagar Haveli merged with Daman & Diu and Andhra
// Pradesh was reorganised.
var StateCodes = map[string]string{
	"01": "Jammu & Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra & Nagar Haveli and Daman & Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman & Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
}

// ValidateGSTIN checks GSTIN format: 15 characters with a known state
// code prefix. It does not verify the PAN segment or check digit.
func ValidateGSTIN(gstin string) (bool, string) {
	if gstin == "" {
		return false, "GSTIN is empty"
	}

	gstin = strings.ToUpper(strings.TrimSpace(gstin))

	if len(gstin) != 15 {
		return false, "GSTIN must be 15 characters"
	}

	stateCode := gstin[:2]
	if _, ok := StateCodes[stateCode]; !ok {
		return false, fmt.Sprintf("Invalid state code: %s", stateCode)
	}

	return true, "Valid GSTIN"
}
