// Package fixture serves a stand-in for the membership site: a JSON plans API
// and a page that renders one plan card per plan from that API.
package fixture

import (
	"encoding/json"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	CardClass      = "card-gym"
	PlainCardClass = "card-plain"

	DefaultAddr = "127.0.0.1:8080"
)

type Plan struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	OriginalPrice int      `json:"originalPrice,omitempty"`
	Duration      string   `json:"duration"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
	Color         string   `json:"color"`
	Icon          string   `json:"icon"`
}

func DefaultPlans() []Plan {
	return []Plan{
		{
			ID:       "plan-monthly",
			Name:     "Basic",
			Price:    1499,
			Duration: "monthly",
			Features: []string{"Gym floor access", "Locker room", "1 trainer consult"},
			Color:    "from-primary to-secondary",
			Icon:     "Zap",
		},
		{
			ID:            "plan-quarterly",
			Name:          "Pro",
			Price:         3999,
			OriginalPrice: 4497,
			Duration:      "quarterly",
			Features:      []string{"Everything in Basic", "Group classes", "Diet plan"},
			Popular:       true,
			Color:         "from-accent to-primary",
			Icon:          "Star",
		},
		{
			ID:            "plan-yearly",
			Name:          "Elite",
			Price:         12999,
			OriginalPrice: 17988,
			Duration:      "yearly",
			Features:      []string{"Everything in Pro", "Personal training", "Recovery zone"},
			Color:         "from-secondary to-accent",
			Icon:          "Crown",
		},
	}
}

type Options struct {
	// Plans defaults to DefaultPlans when nil.
	Plans []Plan
	// RenderDelay is how long the page waits after fetching plans before it
	// renders the cards.
	RenderDelay time.Duration
	// OmitCardClass renders the plans with PlainCardClass instead of CardClass,
	// so a CardClass selector never matches.
	OmitCardClass bool
}

type Server struct {
	Logger *zap.SugaredLogger

	plans     []Plan
	opts      Options
	router    *chi.Mux
	pageTempl *template.Template
}

func NewServer(logger *zap.SugaredLogger, opts Options) *Server {
	plans := opts.Plans
	if plans == nil {
		plans = DefaultPlans()
	}

	sorted := make([]Plan, len(plans))
	copy(sorted, plans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	s := &Server{
		Logger:    logger,
		plans:     sorted,
		opts:      opts,
		pageTempl: template.Must(template.New("membership").Parse(membershipPage)),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/membership", s.handleMembershipPage)
	r.Route("/api/memberships", func(r chi.Router) {
		r.Get("/", s.handleListPlans)
		r.Get("/{id}", s.handleGetPlan)
	})

	s.router = r
	return s
}

// Handler returns the router wrapped with OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "membership-fixture")
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.Logger.Infow("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleListPlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	for _, p := range s.plans {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Membership plan not found"})
}

func (s *Server) handleMembershipPage(w http.ResponseWriter, _ *http.Request) {
	cardClass := CardClass
	if s.opts.OmitCardClass {
		cardClass = PlainCardClass
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := s.pageTempl.Execute(w, struct {
		CardClass     string
		RenderDelayMS int64
	}{
		CardClass:     cardClass,
		RenderDelayMS: s.opts.RenderDelay.Milliseconds(),
	})
	if err != nil {
		s.Logger.Errorw("failed to render membership page", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const membershipPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Membership Plans</title>
<style>
  body { font-family: sans-serif; background: #111; color: #eee; margin: 0; }
  .grid { display: flex; gap: 24px; padding: 48px; }
  .card { background: #222; border-radius: 16px; padding: 24px; width: 260px; }
  .popular { outline: 2px solid #f5a623; }
  .price { font-size: 32px; font-weight: bold; }
  .original { text-decoration: line-through; color: #888; }
</style>
</head>
<body>
<main>
  <h1>Choose your plan</h1>
  <div id="plans" class="grid"></div>
</main>
<script>
  const cardClass = {{.CardClass}};
  const renderDelay = {{.RenderDelayMS}};
  const capitalize = (s) => s.charAt(0).toUpperCase() + s.slice(1);

  function render(plans) {
    const root = document.getElementById("plans");
    for (const plan of plans) {
      const card = document.createElement("div");
      card.className = "card " + cardClass + (plan.popular ? " popular" : "");

      const name = document.createElement("h3");
      name.textContent = plan.name;
      card.appendChild(name);

      const duration = document.createElement("p");
      duration.textContent = capitalize(plan.duration) + " Plan";
      card.appendChild(duration);

      const price = document.createElement("div");
      price.className = "price";
      price.textContent = "₹" + plan.price;
      card.appendChild(price);

      if (plan.originalPrice) {
        const original = document.createElement("div");
        original.className = "original";
        original.textContent = "₹" + plan.originalPrice;
        card.appendChild(original);
      }

      const features = document.createElement("ul");
      for (const f of plan.features || []) {
        const li = document.createElement("li");
        li.textContent = f;
        features.appendChild(li);
      }
      card.appendChild(features);

      root.appendChild(card);
    }
  }

  fetch("/api/memberships")
    .then((res) => res.json())
    .then((plans) => setTimeout(() => render(plans), renderDelay))
    .catch((err) => console.error("Error fetching memberships:", err));
</script>
</body>
</html>
`
