package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"hppgate/config"
	"hppgate/entity"
	"hppgate/services"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const (
	hppUrl           = "/hpp/url"
	modifyPayment    = "/modify/:action"
	recurringDetails = "/recurring/details"
	recurringPayment = "/recurring/payment"
	paymentResults   = "/results/:reference"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	gateway    services.Gateway
	results    services.ResultStore
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: NewLogger("server", false, nil),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(hppUrl, s.hppUrl)
	router.POST(modifyPayment, s.modifyPayment)
	router.POST(recurringDetails, s.recurringDetails)
	router.POST(recurringPayment, s.recurringPayment)
	router.GET(paymentResults, s.paymentResults)
}

func (s *Server) SetGateway(gateway services.Gateway) {
	s.gateway = gateway
}

func (s *Server) SetResultStore(results services.ResultStore) {
	s.results = results
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) hppUrl(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reqID := GetRequestID(WithRequestID(r.Context()))

	var request entity.HPPRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.badRequest(w, reqID, "hpp url: decode request body", err)
		return
	}
	s.applyMerchant(&request.MerchantAccount, nil)
	merchant := s.merchant()
	request.SkinCode = valueOr(request.SkinCode, merchant.SkinCode)
	request.HmacKey = valueOr(request.HmacKey, merchant.HmacKey)

	redirect, err := s.gateway.HPPURL(&request)
	if err != nil {
		s.failure(w, reqID, "hpp url", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": redirect})
}

func (s *Server) modifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	action := entity.ModificationAction(ps.ByName("action"))
	var request entity.ModificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.badRequest(w, reqID, "modify: decode request body", err)
		return
	}
	s.applyMerchant(&request.MerchantAccount, &request.Credentials)

	result, err := s.gateway.Modify(ctx, action, &request)
	if err != nil {
		s.failure(w, reqID, fmt.Sprintf("modify %s", action), err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) recurringDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	var request entity.RecurringQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.badRequest(w, reqID, "recurring details: decode request body", err)
		return
	}
	s.applyMerchant(&request.MerchantAccount, &request.Credentials)

	result, err := s.gateway.ListRecurringDetails(ctx, &request)
	if err != nil {
		s.failure(w, reqID, "recurring details", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) recurringPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	var request entity.RecurringPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.badRequest(w, reqID, "recurring payment: decode request body", err)
		return
	}
	s.applyMerchant(&request.MerchantAccount, &request.Credentials)

	result, err := s.gateway.SubmitRecurringPayment(ctx, &request)
	if err != nil {
		s.failure(w, reqID, "recurring payment", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) paymentResults(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.results == nil {
		s.logger.Warn(fmt.Sprintf("[%s] payment results: database not set", reqID))
		w.WriteHeader(http.StatusNotFound)
		return
	}
	results, err := s.results.GetPaymentResults(ctx, ps.ByName("reference"))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment results", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) merchant() config.Merchant {
	if s.conf == nil {
		return config.Merchant{}
	}
	return s.conf.Merchant
}

// applyMerchant fills empty account and credentials with configured defaults.
func (s *Server) applyMerchant(account *string, credentials *entity.Credentials) {
	merchant := s.merchant()
	*account = valueOr(*account, merchant.Account)
	if credentials != nil {
		credentials.Username = valueOr(credentials.Username, merchant.Username)
		credentials.Password = valueOr(credentials.Password, merchant.Password)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, reqID, text string, err error) {
	s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, text, err))
	s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// failure maps gateway errors: validation to 400, transport and remote to 502.
func (s *Server) failure(w http.ResponseWriter, reqID, text string, err error) {
	status := http.StatusBadGateway
	if IsValidationError(err) {
		status = http.StatusBadRequest
	}
	var remote *RemoteFailureError
	if errors.Is(err, ErrTransport) || errors.As(err, &remote) {
		s.logger.Error(fmt.Sprintf("[%s] %s", reqID, text), err)
	} else {
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, text, err))
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("write response", err)
	}
}
