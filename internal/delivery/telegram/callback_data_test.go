package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

func TestAnswerCallbackRoundTrip(t *testing.T) {
	data := buildAnswerCallback(42, 3, 1)
	assert.Equal(t, "ans:42:3:1", data)

	cd := decodeCallback(data)
	require.Equal(t, actionAnswer, cd.Action)

	params, ok := parseAnswerParams(cd.Params)
	require.True(t, ok)
	assert.Equal(t, answerParams{SessionID: 42, Order: 3, Index: 1}, params)
}

func TestParseAnswerParamsInvalid(t *testing.T) {
	tests := [][]string{
		nil,
		{"1", "2"},
		{"x", "1", "0"},
		{"0", "1", "0"},
		{"1", "0", "0"},
		{"1", "1", "-1"},
		{"1", "1", "0", "extra"},
	}

	for _, params := range tests {
		_, ok := parseAnswerParams(params)
		assert.False(t, ok, "params %v", params)
	}
}

func TestQuizStartCallback(t *testing.T) {
	cd := decodeCallback(buildQuizStartCallback(2))
	assert.Equal(t, actionQuiz, cd.Action)
	idx, ok := parseQuizStartParams(cd.Params)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	cd = decodeCallback(buildQuizStartCallback(-1))
	assert.Equal(t, "quiz", cd.Raw)
	idx, ok = parseQuizStartParams(cd.Params)
	require.True(t, ok)
	assert.Equal(t, -1, idx)

	cd = decodeCallback(buildStatsCallback())
	assert.Equal(t, actionStats, cd.Action)
	assert.Empty(t, cd.Params)
}

func TestParseQuizStartParamsInvalid(t *testing.T) {
	tests := [][]string{
		{"fiqh"},
		{"-1"},
		{""},
		{"1", "2"},
	}

	for _, params := range tests {
		_, ok := parseQuizStartParams(params)
		assert.False(t, ok, "params %v", params)
	}
}

func TestTopicIndex(t *testing.T) {
	topics := []string{"fiqh", "seerah"}

	assert.Equal(t, 1, topicIndex(topics, "seerah"))
	assert.Equal(t, -1, topicIndex(topics, ""))
	assert.Equal(t, -1, topicIndex(topics, "tafsir"))
}

func TestBuildOptionsKeyboard(t *testing.T) {
	session := &entities.QuizSession{ID: 9, CurrentQuestionNum: 2, TotalQuestions: 5}
	q := &entities.Question{
		Type:    entities.QuestionTypeMultipleChoice,
		Options: []string{"المدينة", "الطائف"},
	}

	kb := buildOptionsKeyboard(session, q)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "المدينة", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "ans:9:2:1", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestBuildTopicsKeyboard(t *testing.T) {
	kb := buildTopicsKeyboard([]string{"fiqh", "seerah"})
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "seerah", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "quiz:1", *kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, btnMixedQuiz, kb.InlineKeyboard[2][0].Text)
	assert.Equal(t, "quiz", *kb.InlineKeyboard[2][0].CallbackData)
}

// Topic names never reach callback data, whatever they contain.
func TestBuildTopicsKeyboardUnsafeTopics(t *testing.T) {
	topics := []string{"fiqh:basics", "السيرة النبوية وحياة الصحابة الكرام"}

	kb := buildTopicsKeyboard(topics)
	for i, topic := range topics {
		btn := kb.InlineKeyboard[i][0]
		assert.Equal(t, topic, btn.Text)
		require.NotNil(t, btn.CallbackData)
		assert.LessOrEqual(t, len(*btn.CallbackData), 64)

		idx, ok := parseQuizStartParams(decodeCallback(*btn.CallbackData).Params)
		require.True(t, ok)
		assert.Equal(t, topic, topics[idx])
	}
}

func TestBuildQuizResultKeyboard(t *testing.T) {
	kb := buildQuizResultKeyboard(1)
	assert.Equal(t, "quiz:1", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "stats", *kb.InlineKeyboard[1][0].CallbackData)

	kb = buildQuizResultKeyboard(-1)
	assert.Equal(t, "quiz", *kb.InlineKeyboard[0][0].CallbackData)
}
