package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJudgeRequestAcceptsAlternateIDKeys(t *testing.T) {
	cases := []struct {
		name string
		body string
		want flexibleID
	}{
		{"question_id number", `{"question_id": 5, "language": "python", "code": "x"}`, 5},
		{"question_id string", `{"question_id": "5", "language": "python", "code": "x"}`, 5},
		{"question_id padded string", `{"question_id": " 12 ", "language": "python", "code": "x"}`, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req judgeRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			require.Equal(t, tc.want, req.QuestionID)
		})
	}
}

func TestJudgeRequestJunkIDParsesToZero(t *testing.T) {
	for _, body := range []string{
		`{"id": "abc", "language": "c", "code": "x"}`,
		`{"qid": null, "language": "c", "code": "x"}`,
		`{"qid": [], "language": "c", "code": "x"}`,
		`{"title": "Two Sum", "language": "c", "code": "x"}`,
	} {
		var req judgeRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.Zero(t, req.QuestionID)
		require.Zero(t, req.ID)
		require.Zero(t, req.Qid)
	}
}
