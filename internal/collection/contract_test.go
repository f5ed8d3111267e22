package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/legal-case-api/internal/models"
)

// runContractTests exercises the behavior every backend must share.
func runContractTests(t *testing.T, newCases func(t *testing.T) Collection[models.Case], newUsers func(t *testing.T) Collection[models.User]) {
	ctx := context.Background()

	t.Run("empty collection lists nothing", func(t *testing.T) {
		cases := newCases(t)

		got, err := cases.List(ctx, Match{models.FieldOwnerUserID: "u1"})
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = cases.FindOne(ctx, Match{models.FieldID: "missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("append then list preserves order and filters by owner", func(t *testing.T) {
		cases := newCases(t)

		require.NoError(t, cases.Append(ctx, testCase("01A", "u1", "First")))
		require.NoError(t, cases.Append(ctx, testCase("01B", "u2", "Other")))
		require.NoError(t, cases.Append(ctx, testCase("01C", "u1", "Second")))

		got, err := cases.List(ctx, Match{models.FieldOwnerUserID: "u1"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "First", got[0].Title)
		assert.Equal(t, "Second", got[1].Title)
		for _, c := range got {
			assert.Equal(t, "u1", c.OwnerUserID)
		}

		all, err := cases.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("find one with compound match", func(t *testing.T) {
		cases := newCases(t)
		require.NoError(t, cases.Append(ctx, testCase("01A", "u1", "Mine")))

		got, err := cases.FindOne(ctx, Match{models.FieldID: "01A", models.FieldOwnerUserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, "Mine", got.Title)

		_, err = cases.FindOne(ctx, Match{models.FieldID: "01A", models.FieldOwnerUserID: "u2"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update mutates a single record", func(t *testing.T) {
		cases := newCases(t)
		require.NoError(t, cases.Append(ctx, testCase("01A", "u1", "Case")))
		require.NoError(t, cases.Append(ctx, testCase("01B", "u1", "Untouched")))

		err := cases.Update(ctx, "01A", func(c *models.Case) error {
			c.Documents = append(c.Documents, "u1/01A/x_doc.pdf")
			return nil
		})
		require.NoError(t, err)

		got, err := cases.FindOne(ctx, Match{models.FieldID: "01A"})
		require.NoError(t, err)
		assert.Equal(t, []string{"u1/01A/x_doc.pdf"}, got.Documents)

		other, err := cases.FindOne(ctx, Match{models.FieldID: "01B"})
		require.NoError(t, err)
		assert.Empty(t, other.Documents)
	})

	t.Run("update of unknown id fails with not found", func(t *testing.T) {
		cases := newCases(t)
		err := cases.Update(ctx, "nope", func(c *models.Case) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mutator error aborts the update", func(t *testing.T) {
		cases := newCases(t)
		require.NoError(t, cases.Append(ctx, testCase("01A", "u1", "Before")))

		boom := errors.New("boom")
		err := cases.Update(ctx, "01A", func(c *models.Case) error {
			c.Title = "After"
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := cases.FindOne(ctx, Match{models.FieldID: "01A"})
		require.NoError(t, err)
		assert.Equal(t, "Before", got.Title)
	})

	t.Run("append unique rejects duplicates without overwriting", func(t *testing.T) {
		users := newUsers(t)
		first := models.User{ID: "id-1", Email: "a@x.com", PasswordHash: "h1", CreatedAt: time.Now().UTC()}
		second := models.User{ID: "id-2", Email: "a@x.com", PasswordHash: "h2", CreatedAt: time.Now().UTC()}

		require.NoError(t, users.AppendUnique(ctx, first, Match{models.FieldEmail: first.Email}))
		err := users.AppendUnique(ctx, second, Match{models.FieldEmail: second.Email})
		assert.ErrorIs(t, err, ErrConflict)

		got, err := users.FindOne(ctx, Match{models.FieldEmail: "a@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, "h1", got.PasswordHash)
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		users := newUsers(t)
		require.NoError(t, users.AppendUnique(ctx,
			models.User{ID: "id-1", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now().UTC()},
			Match{models.FieldEmail: "a@x.com"}))

		_, err := users.FindOne(ctx, Match{models.FieldEmail: "A@x.com"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func testCase(id, owner, title string) models.Case {
	return models.Case{
		ID:          id,
		OwnerUserID: owner,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
		Documents:   []string{},
		ChatIDs:     []string{},
	}
}
