package repository

const (
	GetWalletByIDQuery = `
        SELECT id, user_id, balance, created_at, updated_at
        FROM wallets
        WHERE id = $1
    `

	GetWalletByUserIDQuery = `
        SELECT id, user_id, balance, created_at, updated_at
        FROM wallets
        WHERE user_id = $1
    `

	CreateWalletQuery = `
        INSERT INTO wallets (id, user_id, balance, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING created_at, updated_at
    `

	CreditWalletQuery = `
        UPDATE wallets
        SET balance = balance + $2, updated_at = NOW()
        WHERE id = $1
        RETURNING id, user_id, balance, created_at, updated_at
    `

	// The balance guard lives in the WHERE clause so the store serializes
	// conflicting debits: of two concurrent debits that would jointly
	// overdraw, only one can match.
	DebitWalletQuery = `
        UPDATE wallets
        SET balance = balance - $2, updated_at = NOW()
        WHERE id = $1
          AND balance >= $2
    `

	WalletExistsQuery = `
        SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)
    `

	CreateTransactionQuery = `
        INSERT INTO transactions (id, wallet_id, type, amount, target_wallet_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `

	ListTransactionsQuery = `
        SELECT id, wallet_id, type, amount, target_wallet_id, created_at, updated_at
        FROM transactions
        WHERE wallet_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `

	CountTransactionsQuery = `
        SELECT COUNT(*)
        FROM transactions
        WHERE wallet_id = $1
    `

	CreateUserQuery = `
        INSERT INTO users (id, first_name, middle_name, last_name, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING created_at, updated_at
    `

	UserExistsByEmailQuery = `
        SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
    `

	GetOldestUserQuery = `
        SELECT id, first_name, middle_name, last_name, email, created_at, updated_at
        FROM users
        ORDER BY created_at ASC
        LIMIT 1
    `
)
