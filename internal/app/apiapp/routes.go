package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/config"
	authsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/auth"
	chatsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/chat"
	matchessvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/matches"
	mediasvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/media"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	swipesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/swipes"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService  *authsvc.Service
	PetService   *petssvc.Service
	SwipeService *swipesvc.Service
	MatchService *matchessvc.Service
	ChatService  *chatsvc.Service
	MediaService *mediasvc.Service
	Logger       *zap.Logger
	Config       config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	petsHandler := handlers.NewPetsHandler(deps.PetService)
	candidatesHandler := handlers.NewCandidatesHandler(deps.SwipeService, deps.PetService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService, deps.PetService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService, deps.PetService)
	chatHandler := handlers.NewChatHandler(deps.ChatService, deps.PetService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService, deps.PetService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
	})

	r.With(authMW).Post("/pets", petsHandler.Create)
	r.With(authMW).Get("/pets/me", petsHandler.Me)
	r.With(authMW).Get("/candidates", candidatesHandler.Handle)
	r.With(authMW).Post("/swipe", swipeHandler.Handle)
	r.With(authMW).Get("/matches", matchesHandler.List)
	r.With(authMW).Post("/matches/{id}/messages", chatHandler.Send)
	r.With(authMW).Get("/matches/{id}/messages", chatHandler.History)
	r.With(authMW).Get("/matches/{id}/messages/new", chatHandler.Poll)
	r.With(authMW).Post("/media/photo", mediaHandler.PhotoUpload)
	r.With(authMW).Get("/media/photos", mediaHandler.PhotosList)
}
