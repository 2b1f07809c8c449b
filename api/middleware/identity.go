package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgAuth "github.com/emekaobi/jollofkitchen-backend/pkg/auth"
	"github.com/emekaobi/jollofkitchen-backend/pkg/auth/session"
	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

// Identity resolves the cart owner for routes that serve both signed-in
// users and anonymous visitors. A valid bearer token wins; otherwise the
// guest token header is used, and a fresh token is minted (and echoed back)
// when the device has none yet. It never rejects a request.
func Identity(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := pkgAuth.ParseAccessToken(cfg, token); err == nil && claims.ID != "" {
					active := true
					if verifier != nil {
						active, _ = verifier.HasSession(r.Context(), claims.ID)
					}
					if active {
						ctx := seedClaims(r.Context(), claims)
						if logg != nil {
							ctx = logg.WithUserID(ctx, claims.UserID.String())
						}
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			guest := strings.TrimSpace(r.Header.Get(GuestTokenHeader))
			if guest == "" {
				guest = uuid.NewString()
			}
			w.Header().Set(GuestTokenHeader, guest)

			ctx := WithGuestToken(r.Context(), guest)
			if logg != nil {
				ctx = logg.WithIdentity(ctx, "guest:"+guest)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
