// Package platformtest runs an in-memory rendition of the platform's REST
// services for workflow tests: enough state to answer the lookup chains and
// enforce duplicate-creation semantics, nothing more.
package platformtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
)

type Arrangement struct {
	ID         string
	ExternalID string
	Currency   arrangement.Currency
	Kind       arrangement.Kind
}

type DataGroup struct {
	ID                         string
	Name                       string
	ExternalServiceAgreementID string
	Items                      []string
}

type FunctionGroup struct {
	ID                         string
	Name                       string
	ExternalServiceAgreementID string
}

type Permission struct {
	ExternalUserID             string
	InternalServiceAgreementID string
	FunctionGroupID            string
	DataGroupIDs               []string
}

type serviceAgreement struct {
	ID         string
	ExternalID string
}

// Server is the fake platform. All services share one base URL; state is
// guarded by a single mutex since tests hammer it concurrently.
type Server struct {
	httpServer *httptest.Server

	mu sync.Mutex

	users              map[string]user.User        // by external ID
	legalEntities      map[string]user.LegalEntity // by external user ID
	legalEntityExtIDs  map[string]bool             // every provisioned legal entity, by external ID
	masterAgreements   map[string]*serviceAgreement
	agreementsByID     map[string]*serviceAgreement
	functions          []accessgroup.Function
	arrangements       map[string]Arrangement // by external ID
	products           map[string]bool
	dataGroups         []DataGroup
	functionGroups     []FunctionGroup
	permissions        []Permission
	dataGroupItemPuts  []accessgroup.DataGroupItemsPutRequest
	balancePostings    map[string]int // by external arrangement ID
	transactionCount   map[string]int // by external arrangement ID
	subscriptions      map[string]int // by external arrangement ID
	contactCount       int
	paymentOrderCount  int
	conversationCount  int
	pocketCount        int
	routeHits          map[string]int
	nextID             int
	failBalanceFor     map[string]bool
	failDataGroupNamed map[string]bool
	failLegalEntityFor map[string]bool
	rejectArrangements bool
}

func NewServer() *Server {
	s := &Server{
		users:              make(map[string]user.User),
		legalEntities:      make(map[string]user.LegalEntity),
		legalEntityExtIDs:  make(map[string]bool),
		masterAgreements:   make(map[string]*serviceAgreement),
		agreementsByID:     make(map[string]*serviceAgreement),
		arrangements:       make(map[string]Arrangement),
		products:           make(map[string]bool),
		balancePostings:    make(map[string]int),
		transactionCount:   make(map[string]int),
		subscriptions:      make(map[string]int),
		routeHits:          make(map[string]int),
		failBalanceFor:     make(map[string]bool),
		failDataGroupNamed: make(map[string]bool),
		failLegalEntityFor: make(map[string]bool),
	}
	s.httpServer = httptest.NewServer(s.router())
	return s
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// Config points every service base URL at this server.
func (s *Server) Config() platform.Config {
	return platform.Config{
		ArrangementsURL: s.httpServer.URL,
		AccessURL:       s.httpServer.URL,
		UsersURL:        s.httpServer.URL,
		PocketsURL:      s.httpServer.URL,
		EngagementURL:   s.httpServer.URL,
	}
}

// ---- state seeding ----

// AddUser registers a user plus its legal entity and master service
// agreement, the full chain identifier resolution walks.
func (s *Server) AddUser(externalUserID, internalUserID string, legalEntity user.LegalEntity, internalAgreementID, externalAgreementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[externalUserID] = user.User{ID: internalUserID, ExternalID: externalUserID, FullName: externalUserID}
	s.legalEntities[externalUserID] = legalEntity
	s.legalEntityExtIDs[legalEntity.ExternalID] = true
	sa := &serviceAgreement{ID: internalAgreementID, ExternalID: externalAgreementID}
	s.masterAgreements[legalEntity.ID] = sa
	s.agreementsByID[internalAgreementID] = sa
}

func (s *Server) SetFunctions(functions []accessgroup.Function) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.functions = functions
}

// AddArrangement pre-provisions an arrangement so a later POST with the same
// external ID takes the duplicate path.
func (s *Server) AddArrangement(externalID string, currency arrangement.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.arrangements[externalID] = Arrangement{
		ID:         fmt.Sprintf("arr-%d", s.nextID),
		ExternalID: externalID,
		Currency:   currency,
	}
}

// RejectArrangementsAsDuplicates makes every arrangement POST take the
// already-exists path, simulating a fully pre-seeded environment.
func (s *Server) RejectArrangementsAsDuplicates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectArrangements = true
}

// FailLegalEntityFor makes creation of the legal entity with the given
// external ID return 500.
func (s *Server) FailLegalEntityFor(externalLegalEntityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLegalEntityFor[externalLegalEntityID] = true
}

// FailBalancesFor makes balance-history posts for one arrangement return 500.
func (s *Server) FailBalancesFor(externalArrangementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failBalanceFor[externalArrangementID] = true
}

// ---- state inspection ----

func (s *Server) Arrangements() []Arrangement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Arrangement, 0, len(s.arrangements))
	for _, a := range s.arrangements {
		out = append(out, a)
	}
	return out
}

func (s *Server) DataGroups() []DataGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DataGroup(nil), s.dataGroups...)
}

func (s *Server) FunctionGroups() []FunctionGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FunctionGroup(nil), s.functionGroups...)
}

func (s *Server) Permissions() []Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Permission(nil), s.permissions...)
}

func (s *Server) DataGroupItemPuts() []accessgroup.DataGroupItemsPutRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]accessgroup.DataGroupItemsPutRequest(nil), s.dataGroupItemPuts...)
}

func (s *Server) BalancePostings(externalArrangementID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balancePostings[externalArrangementID]
}

func (s *Server) TransactionCount(externalArrangementID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactionCount[externalArrangementID]
}

func (s *Server) Subscriptions(externalArrangementID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions[externalArrangementID]
}

// HasUser reports whether a user with the external ID exists, pre-seeded or
// ingested.
func (s *Server) HasUser(externalUserID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[externalUserID]
	return ok
}

func (s *Server) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Server) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Server) ContactCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactCount
}

func (s *Server) PaymentOrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentOrderCount
}

func (s *Server) ConversationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationCount
}

func (s *Server) PocketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pocketCount
}

// RouteHits reports how often a logical route was called, keyed by the same
// names the router registers.
func (s *Server) RouteHits(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routeHits[name]
}

// ---- routing ----

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/usercontext", s.handleSelectContext)

	r.Get("/users/externalids/{externalUserId}", s.handleGetUser)
	r.Get("/users/externalids/{externalUserId}/legalentities", s.handleGetLegalEntity)
	r.Post("/legalentities", s.handleIngestLegalEntity)
	r.Post("/users", s.handleIngestUser)

	r.Get("/legalentities/{internalLegalEntityId}/serviceagreements/master", s.handleMasterAgreement)
	r.Get("/serviceagreements/{id}", s.handleGetAgreement)
	r.Put("/serviceagreements/{id}", s.handlePutAgreement)

	r.Get("/accessgroups/functions", s.handleFunctions)
	r.Post("/accessgroups/function-groups", s.handleIngestFunctionGroup)
	r.Get("/accessgroups/function-groups", s.handleFindFunctionGroup)
	r.Post("/accessgroups/data-groups", s.handleIngestDataGroup)
	r.Put("/accessgroups/data-groups/items", s.handlePutDataGroupItems)
	r.Post("/accessgroups/users/permissions", s.handleAssignPermissions)

	r.Post("/arrangements", s.handleIngestArrangement)
	r.Post("/arrangements/{externalArrangementId}/subscriptions", s.handleSubscription)
	r.Post("/products", s.handleIngestProduct)
	r.Post("/balance-history", s.handleBalanceHistory)

	r.Post("/pockets", s.handleIngestPocket)
	r.Post("/transactions", s.handleIngestTransaction)
	r.Post("/contacts", s.countingHandler("contacts", &s.contactCount))
	r.Post("/payment-orders", s.countingHandler("payment-orders", &s.paymentOrderCount))
	r.Post("/conversations", s.countingHandler("conversations", &s.conversationCount))

	return r
}

func (s *Server) hit(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routeHits[name]++
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body) //nolint:errcheck
	}
}

func writeErrorKey(w http.ResponseWriter, key, message string) {
	writeJSON(w, http.StatusBadRequest, platform.ErrorBody{
		Message: message,
		Errors:  []platform.ErrorEntry{{Message: message, Key: key}},
	})
}

// ---- handlers ----

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.hit("login")
	var body struct {
		Username string `json:"username"`
	}
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
	writeJSON(w, http.StatusOK, map[string]string{"token": "tok-" + body.Username})
}

func (s *Server) handleSelectContext(w http.ResponseWriter, r *http.Request) {
	s.hit("usercontext")
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	writeJSON(w, http.StatusOK, map[string]string{"token": "ctx-" + token})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.hit("get-user")
	s.mu.Lock()
	u, ok := s.users[chi.URLParam(r, "externalUserId")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleGetLegalEntity(w http.ResponseWriter, r *http.Request) {
	s.hit("get-legal-entity")
	s.mu.Lock()
	le, ok := s.legalEntities[chi.URLParam(r, "externalUserId")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, le)
}

func (s *Server) handleIngestLegalEntity(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-legal-entity")
	var body user.LegalEntityPostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	if s.failLegalEntityFor[body.ExternalID] {
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "legal entity creation failed"})
		return
	}
	exists := s.legalEntityExtIDs[body.ExternalID]
	s.legalEntityExtIDs[body.ExternalID] = true
	s.nextID++
	id := fmt.Sprintf("le-int-%d", s.nextID)
	s.mu.Unlock()

	if exists {
		writeErrorKey(w, platform.ErrKeyLegalEntityExists, "legal entity already exists")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleIngestUser(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-user")
	var body user.UserPostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	if _, ok := s.users[body.ExternalID]; ok {
		s.mu.Unlock()
		writeErrorKey(w, platform.ErrKeyUserExists, "user already exists")
		return
	}
	s.nextID++
	created := user.User{
		ID:         fmt.Sprintf("usr-%d", s.nextID),
		ExternalID: body.ExternalID,
		FullName:   body.FullName,
	}
	s.users[body.ExternalID] = created
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (s *Server) handleMasterAgreement(w http.ResponseWriter, r *http.Request) {
	s.hit("master-agreement")
	s.mu.Lock()
	sa, ok := s.masterAgreements[chi.URLParam(r, "internalLegalEntityId")]
	var id, externalID string
	if ok {
		id, externalID = sa.ID, sa.ExternalID
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "externalId": externalID})
}

func (s *Server) handleGetAgreement(w http.ResponseWriter, r *http.Request) {
	s.hit("get-agreement")
	s.mu.Lock()
	sa, ok := s.agreementsByID[chi.URLParam(r, "id")]
	var id, externalID string
	if ok {
		id, externalID = sa.ID, sa.ExternalID
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "externalId": externalID})
}

func (s *Server) handlePutAgreement(w http.ResponseWriter, r *http.Request) {
	s.hit("put-agreement")
	var body user.ServiceAgreementPutRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	sa, ok := s.agreementsByID[chi.URLParam(r, "id")]
	if ok {
		sa.ExternalID = body.ExternalID
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	s.hit("functions")
	s.mu.Lock()
	functions := append([]accessgroup.Function(nil), s.functions...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, functions)
}

func (s *Server) handleIngestFunctionGroup(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-function-group")
	var body accessgroup.FunctionGroupPostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	s.nextID++
	fg := FunctionGroup{
		ID:                         fmt.Sprintf("fg-%d", s.nextID),
		Name:                       body.Name,
		ExternalServiceAgreementID: body.ExternalServiceAgreementID,
	}
	s.functionGroups = append(s.functionGroups, fg)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": fg.ID})
}

func (s *Server) handleFindFunctionGroup(w http.ResponseWriter, r *http.Request) {
	s.hit("find-function-group")
	name := r.URL.Query().Get("name")
	agreementID := r.URL.Query().Get("serviceAgreementExternalId")

	var found *FunctionGroup
	s.mu.Lock()
	for i := range s.functionGroups {
		fg := s.functionGroups[i]
		if fg.Name == name && fg.ExternalServiceAgreementID == agreementID {
			found = &fg
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": found.ID})
}

func (s *Server) handleIngestDataGroup(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-data-group")
	var body accessgroup.DataGroupPostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	if s.failDataGroupNamed[body.Name] {
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "data group creation failed"})
		return
	}
	s.nextID++
	dg := DataGroup{
		ID:                         fmt.Sprintf("dg-%d", s.nextID),
		Name:                       body.Name,
		ExternalServiceAgreementID: body.ExternalServiceAgreementID,
		Items:                      body.Items,
	}
	s.dataGroups = append(s.dataGroups, dg)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": dg.ID})
}

// FailDataGroupNamed makes creation of a data group with the given name 500.
func (s *Server) FailDataGroupNamed(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDataGroupNamed[name] = true
}

func (s *Server) handlePutDataGroupItems(w http.ResponseWriter, r *http.Request) {
	s.hit("put-data-group-items")
	var body accessgroup.DataGroupItemsPutRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	s.dataGroupItemPuts = append(s.dataGroupItemPuts, body)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleAssignPermissions(w http.ResponseWriter, r *http.Request) {
	s.hit("assign-permissions")
	var body accessgroup.PermissionsPostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	s.permissions = append(s.permissions, Permission{
		ExternalUserID:             body.ExternalUserID,
		InternalServiceAgreementID: body.InternalServiceAgreementID,
		FunctionGroupID:            body.FunctionGroupID,
		DataGroupIDs:               body.DataGroupIDs,
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleIngestArrangement(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-arrangement")
	var body arrangement.PostRequest
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	_, exists := s.arrangements[body.ExternalID]
	if exists || s.rejectArrangements {
		s.mu.Unlock()
		writeErrorKey(w, platform.ErrKeyArrangementExists, "arrangement already exists")
		return
	}
	s.nextID++
	a := Arrangement{
		ID:         fmt.Sprintf("arr-%d", s.nextID),
		ExternalID: body.ExternalID,
		Currency:   body.Currency,
		Kind:       body.Kind,
	}
	s.arrangements[body.ExternalID] = a
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": a.ID})
}

func (s *Server) handleIngestProduct(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-product")
	var body arrangement.Product
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	if s.products[body.ID] {
		s.mu.Unlock()
		writeErrorKey(w, platform.ErrKeyProductExists, "product already exists")
		return
	}
	s.products[body.ID] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	s.hit("balance-history")
	var body arrangement.BalanceHistoryItem
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	if s.failBalanceFor[body.ExternalArrangementID] {
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "balance ingestion failed"})
		return
	}
	s.balancePostings[body.ExternalArrangementID]++
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	s.hit("subscriptions")
	s.mu.Lock()
	s.subscriptions[chi.URLParam(r, "externalArrangementId")]++
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleIngestPocket(w http.ResponseWriter, r *http.Request) {
	s.hit("ingest-pocket")
	var body struct {
		Name string `json:"name"`
	}
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("pocket-%d", s.nextID)
	s.pocketCount++
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "name": body.Name})
}

func (s *Server) handleIngestTransaction(w http.ResponseWriter, r *http.Request) {
	s.hit("transactions")
	var body struct {
		ArrangementID string `json:"arrangementId"`
	}
	json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck

	s.mu.Lock()
	s.transactionCount[body.ArrangementID]++
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) countingHandler(name string, counter *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.hit(name)
		s.mu.Lock()
		*counter++
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, nil)
	}
}
