package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PolicyHandlerParams holds dependencies for PolicyHandler, injected by Fx.
type PolicyHandlerParams struct {
	fx.In

	PolicyUC usecase.PolicyUsecase
	ReportUC usecase.ReportUsecase
	Logger   *slog.Logger
}

// PolicyHandler serves commission and revenue split policies and the collection reports built on them.
type PolicyHandler struct {
	policyUC usecase.PolicyUsecase
	reportUC usecase.ReportUsecase
	logger   *slog.Logger
}

// NewPolicyHandler is the constructor for PolicyHandler.
func NewPolicyHandler(params PolicyHandlerParams) *PolicyHandler {
	return &PolicyHandler{
		policyUC: params.PolicyUC,
		reportUC: params.ReportUC,
		logger:   params.Logger,
	}
}

func (h *PolicyHandler) ListCommissionPolicies(c echo.Context) error {
	policies, err := h.policyUC.ListCommissionPolicies(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policies)
}

func (h *PolicyHandler) GetCommissionPolicy(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.GetCommissionPolicy(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

func (h *PolicyHandler) ActiveCommissionPolicy(c echo.Context) error {
	policy, err := h.policyUC.ActiveCommissionPolicy(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

func (h *PolicyHandler) CreateCommissionPolicy(c echo.Context) error {
	var input usecase.CommissionPolicyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.CreateCommissionPolicy(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, policy)
}

func (h *PolicyHandler) UpdateCommissionPolicy(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateCommissionPolicyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.UpdateCommissionPolicy(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

func (h *PolicyHandler) ListRevenueSplitPolicies(c echo.Context) error {
	policies, err := h.policyUC.ListRevenueSplitPolicies(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policies)
}

func (h *PolicyHandler) GetRevenueSplitPolicy(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.GetRevenueSplitPolicy(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

func (h *PolicyHandler) ActiveRevenueSplitPolicy(c echo.Context) error {
	policy, err := h.policyUC.ActiveRevenueSplitPolicy(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

func (h *PolicyHandler) CreateRevenueSplitPolicy(c echo.Context) error {
	var input usecase.RevenueSplitPolicyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.CreateRevenueSplitPolicy(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, policy)
}

func (h *PolicyHandler) UpdateRevenueSplitPolicy(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateRevenueSplitPolicyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	policy, err := h.policyUC.UpdateRevenueSplitPolicy(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, policy)
}

// CollectionReport supports collector_id, from and to.
func (h *PolicyHandler) CollectionReport(c echo.Context) error {
	var input usecase.CollectionReportInput
	var err error
	if input.CollectorID, err = queryUUID(c, "collector_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if input.From, err = queryTime(c, "from"); err != nil {
		return response.HandleAppError(c, err)
	}
	if input.To, err = queryTime(c, "to"); err != nil {
		return response.HandleAppError(c, err)
	}

	report, err := h.reportUC.CollectionReport(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report)
}

func (h *PolicyHandler) Summary(c echo.Context) error {
	summary, err := h.reportUC.Summary(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}
