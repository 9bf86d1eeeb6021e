package view

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestion struct {
	Index      int
	QuestionID uint
	Question   template.HTML
}

func (fakeQuestion) Variants() []template.HTML {
	return []template.HTML{"<p>a</p>", "<p>b</p>", "<p>c</p>", "<p>d</p>", "<p>e</p>"}
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"login.html", "unregistered.html", "term.html", "coding.html", "thankyou.html", "feedback.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestSurveyTemplateFieldNames(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "term.html", map[string]interface{}{
		"Responses":    []fakeQuestion{{Index: 1, QuestionID: 11, Question: "<p>q1</p>"}, {Index: 2, QuestionID: 12, Question: "<p>q2</p>"}},
		"HighlightCSS": template.CSS(".chroma{}"),
		"Scale":        []int{1, 2, 3, 4, 5},
		"Variants":     []string{"A", "B", "C", "D", "E"},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `name="question_id_2" value="12"`)
	assert.Contains(t, out, `name="pre_score_1"`)
	assert.Contains(t, out, `name="post_score_2"`)
	assert.Contains(t, out, `name="rank_1_1"`)
	assert.Contains(t, out, `name="rank_5_2"`)
	assert.Contains(t, out, "<p>q2</p>")
	assert.Contains(t, out, ".chroma{}")
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "x")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "x"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}
