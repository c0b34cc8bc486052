package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/ledger"
	"github.com/osse101/GameVault_Go/internal/logger"
)

// AdjustBalanceRequest adds a signed delta to one bucket
type AdjustBalanceRequest struct {
	Bucket string          `json:"bucket" validate:"required,bucket"`
	Delta  decimal.Decimal `json:"delta" validate:"required"`
}

// AmountRequest moves a positive amount between a player's buckets
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,positive_decimal"`
}

// TransferRequest pays cash from one player to another
type TransferRequest struct {
	FromID int64           `json:"from_id" validate:"required,gt=0"`
	ToID   int64           `json:"to_id" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"amount" validate:"required,positive_decimal"`
}

// BucketResponse is the new value of one bucket after an adjustment
type BucketResponse struct {
	Bucket  string          `json:"bucket"`
	Balance decimal.Decimal `json:"balance"`
}

// HandleGetBalance returns both buckets
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		b, err := svc.GetBalance(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

// HandleAdjustBalance applies a signed delta. A result below zero is rejected.
func HandleAdjustBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req AdjustBalanceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Adjust balance"); err != nil {
			return
		}

		adjust := svc.AdjustCash
		if req.Bucket == BucketBank {
			adjust = svc.AdjustBank
		}
		next, err := adjust(r.Context(), id, req.Delta)
		if err != nil {
			respondServiceError(w, r, "Adjust balance", err)
			return
		}

		logger.FromContext(r.Context()).Info("Balance adjusted",
			"player_id", id, "bucket", req.Bucket, "delta", req.Delta.String())
		respondJSON(w, http.StatusOK, BucketResponse{Bucket: req.Bucket, Balance: next})
	}
}

// HandleDeposit moves cash into the bank
func HandleDeposit(svc ledger.Service) http.HandlerFunc {
	return handleBucketMove(svc.TransferCashToBank, "Deposit")
}

// HandleWithdraw moves bank funds into cash
func HandleWithdraw(svc ledger.Service) http.HandlerFunc {
	return handleBucketMove(svc.TransferBankToCash, "Withdraw")
}

func handleBucketMove(move func(ctx context.Context, id int64, amount decimal.Decimal) (domain.Balance, error), op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, op); err != nil {
			return
		}
		b, err := move(r.Context(), id, req.Amount)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

// HandleTransfer pays cash between players and returns the payer's balance
func HandleTransfer(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}
		b, err := svc.Transfer(r.Context(), req.FromID, req.ToID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Transfer", err)
			return
		}
		logger.FromContext(r.Context()).Info("Cash transferred",
			"from_id", req.FromID, "to_id", req.ToID, "amount", req.Amount.String())
		respondJSON(w, http.StatusOK, b)
	}
}
