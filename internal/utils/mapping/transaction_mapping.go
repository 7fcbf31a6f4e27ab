package mapping

import (
	"github.com/barengs/smpt-sub000/internal/core/domain"
	"github.com/barengs/smpt-sub000/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var source, destination *string
	if d.SourceAccount != "" {
		source = &d.SourceAccount
	}
	if d.DestinationAccount != "" {
		destination = &d.DestinationAccount
	}
	return models.Transaction{
		TransactionID:      d.TransactionID,
		TransactionType:    models.TransactionType(d.TransactionType),
		Amount:             d.Amount,
		Status:             models.TransactionStatus(d.Status),
		ReferenceNumber:    d.ReferenceNumber,
		SourceAccount:      source,
		DestinationAccount: destination,
		Description:        d.Description,
		OriginalTxnID:      d.OriginalTxnID,
		ReversingTxnID:     d.ReversingTxnID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		Status:          domain.TransactionStatus(m.Status),
		ReferenceNumber: m.ReferenceNumber,
		Description:     m.Description,
		OriginalTxnID:   m.OriginalTxnID,
		ReversingTxnID:  m.ReversingTxnID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceAccount != nil {
		d.SourceAccount = *m.SourceAccount
	}
	if m.DestinationAccount != nil {
		d.DestinationAccount = *m.DestinationAccount
	}
	return d
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		CoaCode:       d.CoaCode,
		Side:          string(d.Side),
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		CoaCode:       m.CoaCode,
		Side:          domain.EntrySide(m.Side),
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}
