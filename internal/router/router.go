package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/oggyb/zensend-gateway/internal/docs" // swagger docs
	"github.com/oggyb/zensend-gateway/internal/response"
)

type AppDeps struct {
	Home         HomeHandler
	Message      MessageHandler
	Account      AccountHandler
	Verification VerificationHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	QueueMessage(w http.ResponseWriter, r *http.Request)
	GetSentMessages(w http.ResponseWriter, r *http.Request)
	StartStopScheduler(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Balance(w http.ResponseWriter, r *http.Request)
	Prices(w http.ResponseWriter, r *http.Request)
	LookupOperator(w http.ResponseWriter, r *http.Request)
	CreateSubAccount(w http.ResponseWriter, r *http.Request)
	CreateKeyword(w http.ResponseWriter, r *http.Request)
}

type VerificationHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST /messages", d.Message.QueueMessage)
	mux.HandleFunc("GET /messages/sent", d.Message.GetSentMessages)
	mux.HandleFunc("POST /scheduler", d.Message.StartStopScheduler)

	mux.HandleFunc("GET /account/balance", d.Account.Balance)
	mux.HandleFunc("GET /account/prices", d.Account.Prices)
	mux.HandleFunc("GET /operators/{number}", d.Account.LookupOperator)
	mux.HandleFunc("POST /sub-accounts", d.Account.CreateSubAccount)
	mux.HandleFunc("POST /keywords", d.Account.CreateKeyword)

	mux.HandleFunc("POST /verifications", d.Verification.Start)
	mux.HandleFunc("GET /verifications/{session}", d.Verification.Status)

	//Swagger
	mux.HandleFunc("GET /swagger/", httpSwagger.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
