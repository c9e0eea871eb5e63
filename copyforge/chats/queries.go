package chats

const (
	queryCreate = `
		INSERT INTO chats (user_id, title, model)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, model, created_at, updated_at
	`

	queryGet = `
		SELECT id, user_id, title, model, created_at, updated_at
		FROM chats
		WHERE id = $1 AND user_id = $2
	`

	queryList = `
		SELECT id, user_id, title, model, created_at, updated_at
		FROM chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	queryDelete = `
		DELETE FROM chats
		WHERE id = $1 AND user_id = $2
	`

	queryCountActive = `
		SELECT COUNT(*)
		FROM chats
		WHERE user_id = $1
	`

	queryCountMessages = `
		SELECT COUNT(*)
		FROM chat_messages
		WHERE chat_id = $1
	`

	queryAppendMessage = `
		INSERT INTO chat_messages (chat_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, chat_id, role, content, created_at
	`

	queryMessages = `
		SELECT id, chat_id, role, content, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`

	queryTouchChat = `
		UPDATE chats
		SET updated_at = NOW()
		WHERE id = $1
	`
)
