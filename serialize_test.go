package serialx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type person struct {
	_    struct{} `serialx:"naming=camel_case,prettify=true"`
	id   int64
	name string
	age  int
}

type virtualPerson struct {
	_    struct{} `serialx:"method=FirName:FirstPersonName"`
	ID   int64
	Name string
	Age  int
}

func (p virtualPerson) FirName() string {
	return strings.Split(p.Name, " ")[0]
}

type account struct {
	ID       int64
	FullName string
	Age      int
}

type unannotated struct {
	ID int
}

type labelled struct {
	Label string
	Count int
}

func (l labelled) DisplayLabel() string { return strings.ToUpper(l.Label) }

type remote struct {
	ID int
}

var errRemote = errors.New("remote lookup failed")

func (remote) Owner() (string, error) { return "", errRemote }

type optional struct {
	_        struct{} `serialx:""`
	Nickname *string
}

type badge int

func (b badge) String() string { return fmt.Sprintf("badge-%d", int(b)) }

type decorated struct {
	_     struct{} `serialx:"prettify=false"`
	Badge fmt.Stringer
}

type order struct {
	_        struct{} `serialx:"naming=snake_case,prettify=false"`
	OrderID  uuid.UUID
	PlacedAt time.Time
	Total    float64
	Paid     bool
	Note     string
}

func TestSerialize_EndToEnd(t *testing.T) {
	p := person{id: 1, name: "João da Silva", age: 26}

	t.Run("pretty", func(t *testing.T) {
		out, err := Serialize(p)
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"id\":1,\n    \"name\":\"João da Silva\",\n    \"age\":26\n}", out)
	})

	t.Run("compact", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, RegisterIn[person](r, TypeConfig{Naming: CamelCase, Prettify: false}))
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

		out, err := s.Serialize(&p)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1,"name":"João da Silva","age":26}`, out)
	})
}

func TestSerialize_SnakeCase(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterIn[account](r, TypeConfig{Naming: SnakeCase, Prettify: false}))
	s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

	out, err := s.Serialize(account{ID: 1, FullName: "João da Silva", Age: 26})
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"full_name":"João da Silva","age":26}`, out)
}

func TestSerialize_NamingConventions(t *testing.T) {
	type named struct {
		FirstName string
	}

	tests := []struct {
		convention Convention
		want       string
	}{
		{CamelCase, `{"firstName":"Ana"}`},
		{PascalCase, `{"FirstName":"Ana"}`},
		{SnakeCase, `{"first_name":"Ana"}`},
		{KebabCase, `{"first-name":"Ana"}`},
	}

	for _, tt := range tests {
		t.Run(tt.convention.String(), func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, RegisterIn[named](r, TypeConfig{Naming: tt.convention}))
			s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

			out, err := s.Serialize(named{FirstName: "Ana"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSerialize_VirtualFieldOverride(t *testing.T) {
	out, err := Serialize(virtualPerson{ID: 1, Name: "João da Silva", Age: 26})
	require.NoError(t, err)

	assert.Contains(t, out, `"firstPersonName":"João"`)
	assert.Contains(t, out, `"name":"João da Silva"`)
	assert.NotContains(t, out, "firName")
	assert.True(t, strings.HasSuffix(out, "    \"firstPersonName\":\"João\"\n}"))
}

func TestSerialize_MethodWinsOnCollision(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterIn[labelled](r, TypeConfig{Naming: CamelCase},
		Method("DisplayLabel", "Label"),
	))

	hook := NewObservabilityHookMock()
	hook.On("OnSerializeStart", mock.Anything, "serialx.labelled", mock.Anything).Return()
	hook.On("OnKeyCollision", mock.Anything, "serialx.labelled", "label").Return()
	hook.On("OnSerializeComplete", mock.Anything, "serialx.labelled", mock.Anything, nil, mock.Anything).Return()

	s, metrics := NewTestSerializer(t, &TestSerializerOptions{Registry: r, Hook: hook})

	out, err := s.Serialize(labelled{Label: "draft", Count: 2})
	require.NoError(t, err)

	// the key keeps the position of the field it replaces
	assert.Equal(t, `{"label":"DRAFT","count":2}`, out)
	hook.AssertExpectations(t)
	assert.Equal(t, int64(1), metrics.CounterTotal(MetricCollisions))
}

func TestSerialize_KeySetCompleteness(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterIn[labelled](r, TypeConfig{Naming: KebabCase},
		Method("DisplayLabel", ""),
	))
	s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

	out, err := s.Serialize(labelled{Label: "x", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"label":"x","count":1,"display-label":"X"}`, out)
}

func TestSerialize_Idempotent(t *testing.T) {
	p := virtualPerson{ID: 7, Name: "Maria Souza", Age: 40}

	first, err := Serialize(p)
	require.NoError(t, err)
	second, err := Serialize(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSerialize_PrettyAndCompactAgree(t *testing.T) {
	pretty, compact := NewRegistry(), NewRegistry()
	require.NoError(t, RegisterIn[account](pretty, TypeConfig{Naming: SnakeCase, Prettify: true}))
	require.NoError(t, RegisterIn[account](compact, TypeConfig{Naming: SnakeCase, Prettify: false}))

	a := account{ID: 3, FullName: "Ana Lima", Age: 31}
	ps, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: pretty})
	cs, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: compact})

	prettyOut, err := ps.Serialize(a)
	require.NoError(t, err)
	compactOut, err := cs.Serialize(a)
	require.NoError(t, err)

	stripped := strings.NewReplacer("\n", "", "    ", "").Replace(prettyOut)
	assert.Equal(t, compactOut, stripped)
}

func TestSerialize_OtherValues(t *testing.T) {
	id := uuid.MustParse("5f0c7f1e-8a51-4c55-9a39-2a3e4f0b6d11")
	placed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	out, err := Serialize(order{OrderID: id, PlacedAt: placed, Total: 19.5, Paid: true, Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t,
		`{"order_i_d":5f0c7f1e-8a51-4c55-9a39-2a3e4f0b6d11,"placed_at":2024-03-01 10:00:00 +0000 UTC,"total":19.5,"paid":true,"note":"ok"}`,
		out)
}

func TestSerialize_StringEscaping(t *testing.T) {
	type quoted struct {
		Text string
	}
	r := NewRegistry()
	require.NoError(t, RegisterIn[quoted](r, TypeConfig{Naming: CamelCase}))
	q := quoted{Text: "say \"hi\"\n\\ ação"}

	t.Run("escaped by default", func(t *testing.T) {
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})
		out, err := s.Serialize(q)
		require.NoError(t, err)
		assert.Equal(t, `{"text":"say \"hi\"\n\\ ação"}`, out)
	})

	t.Run("raw strings", func(t *testing.T) {
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r, RawStrings: true})
		out, err := s.Serialize(q)
		require.NoError(t, err)
		assert.Equal(t, "{\"text\":\"say \"hi\"\\ ação\"}", out)
	})
}

func TestSerialize_RawCompactStripsWhitespace(t *testing.T) {
	type memo struct {
		Name string
		Note string
	}
	r := NewRegistry()
	require.NoError(t, RegisterIn[memo](r, TypeConfig{Naming: CamelCase, Prettify: false}))
	m := memo{Name: "a    b", Note: "x\ny"}

	t.Run("raw strings", func(t *testing.T) {
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r, RawStrings: true})
		out, err := s.Serialize(m)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"ab","note":"xy"}`, out)
	})

	t.Run("escaped strings keep their content", func(t *testing.T) {
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})
		out, err := s.Serialize(m)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"a    b","note":"x\ny"}`, out)
	})
}

func TestSerialize_Failures(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		out, err := Serialize(nil)
		assert.ErrorIs(t, err, ErrNullInput)
		assert.Empty(t, out)

		var p *person
		_, err = Serialize(p)
		assert.ErrorIs(t, err, ErrNullInput)
	})

	t.Run("not a struct", func(t *testing.T) {
		_, err := Serialize("text")
		assert.ErrorIs(t, err, ErrNotStruct)
	})

	t.Run("missing configuration", func(t *testing.T) {
		s, metrics := NewTestSerializer(t)
		out, err := s.Serialize(unannotated{ID: 1})

		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.True(t, IsConfigurationError(err))
		assert.Empty(t, out)
		assert.Equal(t, int64(1), metrics.Counter(MetricErrors, map[string]string{
			"type":       "serialx.unannotated",
			"error_type": "configuration_missing",
		}))
	})

	t.Run("method error is returned untouched", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, RegisterIn[remote](r, DefaultTypeConfig(), Method("Owner", "")))
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

		out, err := s.Serialize(remote{ID: 1})
		assert.Same(t, errRemote, err)
		assert.Empty(t, out)
	})

	t.Run("nil member", func(t *testing.T) {
		_, err := Serialize(optional{})
		assert.ErrorIs(t, err, ErrNullValue)
		assert.True(t, IsValueError(err))
		assert.Contains(t, err.Error(), "Nickname")

		nick := "Jo"
		out, err := Serialize(optional{Nickname: &nick})
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"nickname\":\"Jo\"\n}", out)
	})

	t.Run("nil member behind an interface", func(t *testing.T) {
		_, err := Serialize(decorated{Badge: (*badge)(nil)})
		assert.ErrorIs(t, err, ErrNullValue)
		assert.Contains(t, err.Error(), "Badge")

		b := badge(3)
		out, err := Serialize(decorated{Badge: &b})
		require.NoError(t, err)
		assert.Equal(t, `{"badge":badge-3}`, out)
	})

	t.Run("invalid method declaration", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, RegisterIn[remote](r, DefaultTypeConfig(), Method("Missing", "")))
		s, _ := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

		_, err := s.Serialize(remote{})
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})
}

func TestSerialize_Concurrent(t *testing.T) {
	p := virtualPerson{ID: 1, Name: "João da Silva", Age: 26}
	want := MustSerialize(p)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Serialize(p)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

type requestKey struct{}

func TestSerializeContext_Hooks(t *testing.T) {
	ctx := context.WithValue(context.Background(), requestKey{}, "request")

	hook := NewObservabilityHookMock()
	hook.On("OnSerializeStart", ctx, "serialx.unannotated", mock.Anything).Return()
	hook.On("OnError", ctx, "serialx.unannotated", mock.Anything, mock.Anything).Return()
	hook.On("OnSerializeComplete", ctx, "serialx.unannotated", mock.Anything, mock.Anything, mock.Anything).Return()

	s, metrics := NewTestSerializer(t, &TestSerializerOptions{Hook: hook})
	_, err := s.SerializeContext(ctx, &unannotated{})
	require.Error(t, err)

	hook.AssertExpectations(t)
	assert.Equal(t, int64(1), metrics.CounterTotal(MetricSerializeFailed))
}

func TestSerialize_Metrics(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterIn[account](r, DefaultTypeConfig()))
	s, metrics := NewTestSerializer(t, &TestSerializerOptions{Registry: r})

	for range 3 {
		_, err := s.Serialize(account{ID: 1})
		require.NoError(t, err)
	}

	tags := map[string]string{"type": "serialx.account"}
	assert.Equal(t, int64(3), metrics.Counter(MetricSerializeStarted, tags))
	assert.Equal(t, int64(3), metrics.CounterTotal(MetricSerializeSucceeded))
	assert.Equal(t, []float64{3, 3, 3}, metrics.Values(MetricMembers, tags))
	assert.Len(t, metrics.Timings(MetricSerializeDuration, map[string]string{"type": "serialx.account", "status": "success"}), 3)
}

func TestMustSerialize_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSerialize(unannotated{}) })
}
