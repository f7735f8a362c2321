package telegram

import (
	"slices"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer = "ans"
	actionQuiz   = "quiz"
	actionStats  = "stats"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerParams is the payload of a multiple-choice button.
type answerParams struct {
	SessionID int64
	Order     int
	Index     int
}

// buildAnswerCallback builds callback data for choosing an option.
func buildAnswerCallback(sessionID int64, order, index int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.FormatInt(sessionID, 10),
			strconv.Itoa(order),
			strconv.Itoa(index),
		},
	}.encode()
}

// parseAnswerParams validates the params of an answer callback.
func parseAnswerParams(params []string) (answerParams, bool) {
	if len(params) != 3 {
		return answerParams{}, false
	}

	sessionID, err1 := strconv.ParseInt(params[0], 10, 64)
	order, err2 := strconv.Atoi(params[1])
	index, err3 := strconv.Atoi(params[2])
	if err1 != nil || err2 != nil || err3 != nil || sessionID <= 0 || order < 1 || index < 0 {
		return answerParams{}, false
	}

	return answerParams{SessionID: sessionID, Order: order, Index: index}, true
}

// buildQuizStartCallback builds callback data for starting a quiz.
// topicIndex points into the sorted topic list; a negative index starts a
// mixed quiz. Topic names are never put into callback data: they may contain
// the separator and Telegram limits callback data to 64 bytes.
func buildQuizStartCallback(topicIndex int) string {
	if topicIndex < 0 {
		return actionQuiz
	}
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(topicIndex)},
	}.encode()
}

// parseQuizStartParams returns the topic index of a quiz start callback,
// -1 for a mixed quiz.
func parseQuizStartParams(params []string) (int, bool) {
	switch len(params) {
	case 0:
		return -1, true
	case 1:
		idx, err := strconv.Atoi(params[0])
		if err != nil || idx < 0 {
			return 0, false
		}
		return idx, true
	default:
		return 0, false
	}
}

// topicIndex returns the position of topic in topics, -1 for the empty
// topic or an unknown one.
func topicIndex(topics []string, topic string) int {
	if topic == "" {
		return -1
	}
	return slices.Index(topics, topic)
}

// buildStatsCallback builds callback data for opening statistics.
func buildStatsCallback() string {
	return actionStats
}
