package users

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRepo envolve o MemoryRepository contando escritas e permitindo
// injetar falhas por operação.
type recordingRepo struct {
	*MemoryRepository
	writes    int
	deletes   int
	getErr    error
	scanErr   error
	putErr    error
	updateErr error
	deleteErr error
	// dropOnUpdate simula um delete concorrente entre o update e a releitura
	dropOnUpdate bool
}

func newRecordingRepo(seed ...User) *recordingRepo {
	return &recordingRepo{MemoryRepository: NewMemoryRepository(seed...)}
}

func (r *recordingRepo) Get(ctx context.Context, id string) (*User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.MemoryRepository.Get(ctx, id)
}

func (r *recordingRepo) Scan(ctx context.Context) ([]User, error) {
	if r.scanErr != nil {
		return nil, r.scanErr
	}
	return r.MemoryRepository.Scan(ctx)
}

func (r *recordingRepo) Put(ctx context.Context, u User) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.writes++
	return r.MemoryRepository.Put(ctx, u)
}

func (r *recordingRepo) Update(ctx context.Context, id string, p Patch) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.writes++
	if r.dropOnUpdate {
		return r.MemoryRepository.Delete(ctx, id)
	}
	return r.MemoryRepository.Update(ctx, id, p)
}

func (r *recordingRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletes++
	return r.MemoryRepository.Delete(ctx, id)
}

func fixedID(id string) Option {
	return WithIDGenerator(func(int) (string, error) { return id, nil })
}

func str(s string) *string { return &s }

var doe = User{
	ID:       "abc",
	Lastname: "Doe",
	DOB:      "1990-05-01",
	Address:  "1 Main St",
	Gender:   "F",
	Email:    "jane@doe.com",
	PhoneNo:  "5551234567",
}

const validCreateBody = `{"lastname":"Doe","dob":"1990-5-1","address":"1 Main St","gender":"F","email":"jane@doe.com","phone_no":"5551234567"}`

func TestHandler_List(t *testing.T) {
	t.Run("empty table returns empty list", func(t *testing.T) {
		resp := NewHandler(newRecordingRepo()).List(context.Background())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := resp.JSON()
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("normalizes stored dates", func(t *testing.T) {
		stored := doe
		stored.DOB = "Tue, 01 May 1990 00:00:00 GMT"
		odd := User{ID: "xyz", DOB: "sometime"}

		resp := NewHandler(newRecordingRepo(stored, odd)).List(context.Background())

		require.Equal(t, http.StatusOK, resp.StatusCode)
		items := resp.Body.([]User)
		require.Len(t, items, 2)
		assert.Equal(t, "1990-05-01", items[0].DOB)
		assert.Equal(t, "sometime", items[1].DOB)
	})

	t.Run("store error", func(t *testing.T) {
		repo := newRecordingRepo()
		repo.scanErr = errors.New("table unavailable")

		resp := NewHandler(repo).List(context.Background())

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "table unavailable"}, resp.Body)
	})
}

func TestHandler_Get(t *testing.T) {
	h := NewHandler(newRecordingRepo(doe))

	resp := h.Get(context.Background(), "abc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, doe, resp.Body)

	resp = h.Get(context.Background(), "nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, err := resp.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Error":"User not Found"}`, string(body))
}

func TestHandler_Create(t *testing.T) {
	t.Run("stores normalized record", func(t *testing.T) {
		repo := newRecordingRepo()
		h := NewHandler(repo, fixedID("abc"))

		resp := h.Create(context.Background(), str(validCreateBody))

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, doe, resp.Body)

		stored, err := repo.MemoryRepository.Get(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, doe, *stored)
	})

	t.Run("generated id uses configured length", func(t *testing.T) {
		repo := newRecordingRepo()
		resp := NewHandler(repo, WithIDLength(6)).Create(context.Background(), str(validCreateBody))

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Len(t, resp.Body.(User).ID, 6)
	})

	tests := []struct {
		name     string
		body     *string
		wantJSON string
	}{
		{"missing body", nil, `{"Error":"Request body is missing"}`},
		{"empty body", str(""), `{"Error":"Request body is missing"}`},
		{"invalid json", str(`{"lastname":`), `{"Error":"Invalid JSON format"}`},
		{"json array", str(`[1,2]`), `{"Error":"Invalid JSON format"}`},
		{"json null", str(`null`), `{"Error":"Invalid JSON format"}`},
		{
			"missing fields in declared order",
			str(`{"lastname":"Doe","dob":"1990-05-01","address":"x","gender":"F"}`),
			`{"Error":"Missing required fields","Missing Fields":["email","phone_no"]}`,
		},
		{
			"empty string counts as missing",
			str(`{"lastname":"","dob":"1990-05-01","address":"x","gender":"F","email":"a@b.c","phone_no":"5551234567"}`),
			`{"Error":"Missing required fields","Missing Fields":["lastname"]}`,
		},
		{
			"keys are case sensitive",
			str(`{"LastName":"Doe","DOB":"1990-05-01","Address":"x","Gender":"F","EMAIL":"a@b.c","Phone_No":"5551234567"}`),
			`{"Error":"Missing required fields","Missing Fields":["lastname","dob","address","gender","email","phone_no"]}`,
		},
		{
			"invalid email wins over phone and dob",
			str(`{"lastname":"Doe","dob":"bad","address":"x","gender":"F","email":"nope","phone_no":"1"}`),
			`{"Error":"Invalid Email"}`,
		},
		{
			"invalid phone wins over dob",
			str(`{"lastname":"Doe","dob":"bad","address":"x","gender":"F","email":"a@b.c","phone_no":"1"}`),
			`{"Error":"Invalid Phone Number"}`,
		},
		{
			"invalid dob",
			str(`{"lastname":"Doe","dob":"05/01/1990","address":"x","gender":"F","email":"a@b.c","phone_no":"5551234567"}`),
			`{"Error":"Invalid Date Format, Please use YYYY-MM-DD format"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRecordingRepo()
			resp := NewHandler(repo, fixedID("abc")).Create(context.Background(), tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body, err := resp.JSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(body))
			assert.Zero(t, repo.writes)
		})
	}

	t.Run("id generation failure", func(t *testing.T) {
		repo := newRecordingRepo()
		h := NewHandler(repo, WithIDGenerator(func(int) (string, error) {
			return "", errors.New("entropy exhausted")
		}))

		resp := h.Create(context.Background(), str(validCreateBody))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "Internal error: entropy exhausted"}, resp.Body)
		assert.Zero(t, repo.writes)
	})

	t.Run("store error", func(t *testing.T) {
		repo := newRecordingRepo()
		repo.putErr = errors.New("throughput exceeded")

		resp := NewHandler(repo, fixedID("abc")).Create(context.Background(), str(validCreateBody))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "throughput exceeded"}, resp.Body)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("changes only the given field", func(t *testing.T) {
		repo := newRecordingRepo(doe)

		resp := NewHandler(repo).Update(context.Background(), "abc", str(`{"gender":"M"}`))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		want := doe
		want.Gender = "M"
		assert.Equal(t, want, resp.Body)
	})

	t.Run("stores dob in canonical form", func(t *testing.T) {
		repo := newRecordingRepo(doe)

		resp := NewHandler(repo).Update(context.Background(), "abc", str(`{"dob":"Sat, 29 Feb 2020 10:00:00 GMT"}`))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "2020-02-29", resp.Body.(User).DOB)
	})

	t.Run("null and unknown fields are ignored", func(t *testing.T) {
		repo := newRecordingRepo(doe)

		resp := NewHandler(repo).Update(context.Background(), "abc", str(`{"email":null,"nickname":"jd","address":"2 Main St"}`))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := resp.Body.(User)
		assert.Equal(t, "2 Main St", got.Address)
		assert.Equal(t, doe.Email, got.Email)
	})

	t.Run("exact key wins over mis-cased duplicate", func(t *testing.T) {
		for _, body := range []string{
			`{"email":"ok@x.y","Email":"still@ok.z"}`,
			`{"Email":"still@ok.z","email":"ok@x.y"}`,
		} {
			repo := newRecordingRepo(doe)

			resp := NewHandler(repo).Update(context.Background(), "abc", str(body))

			require.Equal(t, http.StatusOK, resp.StatusCode, body)
			stored, err := repo.MemoryRepository.Get(context.Background(), "abc")
			require.NoError(t, err)
			assert.Equal(t, "ok@x.y", stored.Email, body)
		}
	})

	tests := []struct {
		name     string
		body     *string
		wantJSON string
	}{
		{"missing body", nil, `{"Error":"Request body is missing"}`},
		{"invalid json", str(`{`), `{"Error":"Invalid JSON format"}`},
		{"not an object", str(`"gender"`), `{"Error":"Invalid JSON format"}`},
		{"no known fields", str(`{"nickname":"jd"}`), `{"Error":"No valid fields to update"}`},
		{"empty object", str(`{}`), `{"Error":"No valid fields to update"}`},
		{"mis-cased key", str(`{"GENDER":"M"}`), `{"Error":"No valid fields to update"}`},
		{"mis-cased email is not validated", str(`{"Email":"nope","Phone_No":"1"}`), `{"Error":"No valid fields to update"}`},
		{"invalid email", str(`{"gender":"M","email":"nope"}`), `{"Error":"Invalid email format"}`},
		{"invalid phone", str(`{"phone_no":"123"}`), `{"Error":"Invalid phone number format"}`},
		{"invalid dob", str(`{"dob":"01/05/1990"}`), `{"Error":"Invalid date format, please use YYYY-MM-DD"}`},
		{"dob checked before email", str(`{"email":"nope","dob":"x"}`), `{"Error":"Invalid date format, please use YYYY-MM-DD"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRecordingRepo(doe)
			resp := NewHandler(repo).Update(context.Background(), "abc", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body, err := resp.JSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(body))
			assert.Zero(t, repo.writes)

			stored, err := repo.MemoryRepository.Get(context.Background(), "abc")
			require.NoError(t, err)
			assert.Equal(t, doe, *stored)
		})
	}

	t.Run("record gone after write", func(t *testing.T) {
		repo := newRecordingRepo(doe)
		repo.dropOnUpdate = true

		resp := NewHandler(repo).Update(context.Background(), "abc", str(`{"gender":"M"}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "User not found"}, resp.Body)
	})

	t.Run("unknown user is checked before the body", func(t *testing.T) {
		repo := newRecordingRepo()

		resp := NewHandler(repo).Update(context.Background(), "nope", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "User not found"}, resp.Body)
	})

	t.Run("store error", func(t *testing.T) {
		repo := newRecordingRepo(doe)
		repo.updateErr = errors.New("conditional check failed")

		resp := NewHandler(repo).Update(context.Background(), "abc", str(`{"gender":"M"}`))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, ErrorBody{Error: "conditional check failed"}, resp.Body)
	})
}

func TestHandler_Delete(t *testing.T) {
	repo := newRecordingRepo(doe)
	h := NewHandler(repo)

	resp := h.Delete(context.Background(), "abc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := resp.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Message":"User successfully deleted"}`, string(body))

	resp = h.Delete(context.Background(), "abc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ErrorBody{Error: "User not found"}, resp.Body)
	assert.Equal(t, 1, repo.deletes)
}

func TestHandler_DeleteStoreError(t *testing.T) {
	repo := newRecordingRepo(doe)
	repo.getErr = errors.New("access denied")

	resp := NewHandler(repo).Delete(context.Background(), "abc")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, ErrorBody{Error: "access denied"}, resp.Body)
	assert.Zero(t, repo.deletes)
}
