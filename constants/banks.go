package constants

// Canonical bank identifiers used as the storage and grouping key for
// ledgers, independent of the spelling recognized from a document.
const (
	BankUBA      = "UBA"
	BankFirst    = "FirstBank"
	BankGT       = "GTBank"
	BankAccess   = "AccessBank"
	BankZenith   = "ZenithBank"
	BankFidelity = "FidelityBank"
	BankStanbic  = "Stanbic IBTC"
	BankUnion    = "UnionBank"
	BankWema     = "WemaBank"
	BankSterling = "SterlingBank"
	BankEco      = "EcoBank"
)

// CanonicalBanks lists every known bank identifier in a stable order.
var CanonicalBanks = []string{
	BankUBA,
	BankFirst,
	BankGT,
	BankAccess,
	BankZenith,
	BankFidelity,
	BankStanbic,
	BankUnion,
	BankWema,
	BankSterling,
	BankEco,
}

// BankAliases maps each canonical identifier to the lowercase spellings
// seen on scanned payslips. Matching is exact (after trim+lowercase),
// never substring.
var BankAliases = map[string][]string{
	BankUBA:      {"united bank of africa", "uba bank", "united bank", "uba", "united bank for africa"},
	BankFirst:    {"first bank", "firstbank", "first bank nigeria", "fbn"},
	BankGT:       {"gt bank", "guaranty trust bank", "gtb", "gtbank"},
	BankAccess:   {"access bank", "accessbank", "access"},
	BankZenith:   {"zenith bank", "zenithbank", "zenith"},
	BankFidelity: {"fidelity", "fid", "fidelity bank"},
	BankStanbic:  {"stanbic", "stanbic bank"},
	BankUnion:    {"union", "union bank", "unionbank"},
	BankWema:     {"wema", "wema bank", "wemanigeria"},
	BankSterling: {"sterling", "sterling bank", "sterling nigeria"},
	BankEco:      {"eco", "eco bank", "eco nigeria"},
}
