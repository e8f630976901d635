package routing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"movielists/pkg/handlers"
	"movielists/pkg/list"
	"movielists/pkg/middleware"
	"movielists/pkg/session"
	"movielists/pkg/user"
)

type Deps struct {
	Users    user.ServiceInterface
	Lists    list.ServiceList
	Sessions session.Repository
	Secret   []byte
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// NewRouter wires every endpoint behind the panic and auth middlewares.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Panic(d.Logger))
	r.Use(middleware.Auth(d.Sessions, d.Secret, d.Logger))

	InitRoutes(r, d)
	ServeFallback(r)
	return r
}

func InitRoutes(r *mux.Router, d Deps) {
	userHandler := handlers.NewUserHandler(d.Users, d.Logger, d.Secret, d.TokenTTL)
	listHandler := handlers.NewListHandler(d.Lists, d.Logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	listsRouter := r.PathPrefix("/lists").Subrouter()
	userRouter := r.PathPrefix("/user").Subrouter()

	/* auth routers */
	r.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	r.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")
	r.HandleFunc("/logout", userHandler.Logout).Methods("POST").Name("logout")

	/* list routers */
	listsRouter.HandleFunc("", listHandler.GetLists).Methods("GET")
	listsRouter.HandleFunc("", listHandler.CreateList).Methods("POST")
	listsRouter.HandleFunc("/{list_name}", listHandler.DeleteList).Methods("DELETE")
	listsRouter.HandleFunc("/{old_name}/rename", listHandler.RenameList).Methods("PUT")
	listsRouter.HandleFunc("/{list_name}/movies", listHandler.AddMovie).Methods("POST")
	listsRouter.HandleFunc("/{list_name}/movies/{movie_id}", listHandler.RemoveMovie).Methods("DELETE")
	listsRouter.HandleFunc("/{list_name}/movies/{movie_id}/rating", listHandler.UpdateRating).Methods("PUT")

	/* user routers */
	userRouter.HandleFunc("/id/{user_id}", userHandler.ViewUserByID).Methods("GET")
	userRouter.HandleFunc("/{username}", userHandler.ViewUser).Methods("GET")
	userRouter.HandleFunc("/{username}", userHandler.UpdateUser).Methods("PUT")
	userRouter.HandleFunc("/{username}", userHandler.DeleteUser).Methods("DELETE")
}

func ServeFallback(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
	})
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, addr string, r http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
