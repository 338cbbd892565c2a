package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"medihealth-backend/internal/models"
	"medihealth-backend/internal/repository"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo keeps users in a slice, keyed by email and hex id.
type fakeUserRepo struct {
	users []models.User
	err   error
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user models.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user.ID.Hex(), nil
}

func (f *fakeUserRepo) List(context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id, role string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.users {
		if f.users[i].ID.Hex() == id && f.users[i].Role != role {
			f.users[i].Role = role
			return 1, nil
		}
	}
	return 0, nil
}

// fakeCartRepo mirrors the store-level merge semantics in memory so handler
// tests exercise the same invariants as the mongo implementation.
type fakeCartRepo struct {
	items []models.CartItem
	err   error
}

func (f *fakeCartRepo) ListForBuyer(_ context.Context, email string) ([]models.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CartItem{}
	for _, it := range f.items {
		if it.BuyerEmail == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) Add(_ context.Context, item models.CartItem) (repository.CartAddResult, error) {
	if f.err != nil {
		return repository.CartAddResult{}, f.err
	}
	for i := range f.items {
		if f.items[i].MedicineID == item.MedicineID && f.items[i].BuyerEmail == item.BuyerEmail {
			f.items[i].Quantity++
			return repository.CartAddResult{ModifiedCount: 1, Merged: true}, nil
		}
	}
	item.ID = primitive.NewObjectID()
	item.Quantity = 1
	f.items = append(f.items, item)
	return repository.CartAddResult{InsertedID: item.ID.Hex()}, nil
}

func (f *fakeCartRepo) Increase(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items[i].Quantity++
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartRepo) Decrease(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			if f.items[i].Quantity > 1 {
				f.items[i].Quantity--
				return false, nil
			}
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, repository.ErrCartItemNotFound
}

func (f *fakeCartRepo) Remove(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartRepo) RemoveMany(_ context.Context, ids []string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var deleted int64
	for _, id := range ids {
		if n, _ := f.Remove(context.Background(), id); n > 0 {
			deleted++
		}
	}
	return deleted, nil
}

type fakeMedicineRepo struct {
	docs map[string]bson.M
	err  error
}

func (f *fakeMedicineRepo) List(context.Context) ([]bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []bson.M{}
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeMedicineRepo) Get(_ context.Context, id string) (bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs[id], nil
}

func (f *fakeMedicineRepo) Create(_ context.Context, doc bson.M) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id := primitive.NewObjectID().Hex()
	if f.docs == nil {
		f.docs = map[string]bson.M{}
	}
	f.docs[id] = doc
	return id, nil
}

func (f *fakeMedicineRepo) Update(_ context.Context, id string, doc bson.M) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	existing, ok := f.docs[id]
	if !ok {
		return 0, nil
	}
	for k, v := range doc {
		existing[k] = v
	}
	return 1, nil
}

func (f *fakeMedicineRepo) Delete(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.docs[id]; !ok {
		return 0, nil
	}
	delete(f.docs, id)
	return 1, nil
}

type fakePaymentRepo struct {
	docs    []bson.M
	revenue float64
	stats   []models.CategoryStat
	err     error
}

func (f *fakePaymentRepo) Create(_ context.Context, doc bson.M) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.docs = append(f.docs, doc)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakePaymentRepo) ListAll(context.Context) ([]bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakePaymentRepo) ListForUser(_ context.Context, email string) ([]bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []bson.M{}
	for _, d := range f.docs {
		if d["email"] == email {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id, status string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, d := range f.docs {
		if d["_id"] == id {
			d["status"] = status
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakePaymentRepo) RevenueTotal(context.Context) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.revenue, nil
}

func (f *fakePaymentRepo) OrderStatsByCategory(context.Context) ([]models.CategoryStat, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

type fakeAdRepo struct {
	docs map[string]bson.M
	err  error
}

func (f *fakeAdRepo) List(context.Context) ([]bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []bson.M{}
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeAdRepo) Create(_ context.Context, doc bson.M) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id := primitive.NewObjectID().Hex()
	if f.docs == nil {
		f.docs = map[string]bson.M{}
	}
	f.docs[id] = doc
	return id, nil
}

func (f *fakeAdRepo) SetStatus(_ context.Context, id, status string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	doc, ok := f.docs[id]
	if !ok {
		return 0, nil
	}
	doc["status"] = status
	return 1, nil
}

type fakeIntentCreator struct {
	amount int64
	secret string
	err    error
}

func (f *fakeIntentCreator) CreateIntent(amountCents int64) (string, error) {
	f.amount = amountCents
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

type testDeps struct {
	users    *fakeUserRepo
	carts    *fakeCartRepo
	medicine *fakeMedicineRepo
	payments *fakePaymentRepo
	ads      *fakeAdRepo
	intents  *fakeIntentCreator
}

func newTestRouter(t *testing.T) (*gin.Engine, *testDeps) {
	t.Helper()
	deps := &testDeps{
		users:    &fakeUserRepo{},
		carts:    &fakeCartRepo{},
		medicine: &fakeMedicineRepo{},
		payments: &fakePaymentRepo{},
		ads:      &fakeAdRepo{},
		intents:  &fakeIntentCreator{secret: "pi_test_secret"},
	}
	h := New(Repositories{
		Users:          deps.users,
		Medicines:      deps.medicine,
		Carts:          deps.carts,
		Payments:       deps.payments,
		Advertisements: deps.ads,
	}, deps.intents, testSecret, zap.NewNop())
	r := gin.New()
	h.Register(r)
	return r, deps
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	claims := Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doRequest(r *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
