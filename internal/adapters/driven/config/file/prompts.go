package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// systemPromptFile is the user-editable prompt file name.
const systemPromptFile = "chat_system.txt"

// defaultSystemPrompt is the embedded chat persona, used when no user
// file exists and as the initial content of a newly created one.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultSystemPrompt = `You are a Canadian politics expert who analyzes Liberal and Conservative party policies.
Answer questions about the policies and positions of these two parties based ONLY on the
information provided with each question. If the provided information does not answer the
question, or a party has not stated a position, clearly say you don't have that information.
Always cite the source each piece of information came from. Never make up or infer policy
positions that are not explicitly supported by the provided content. When comparing parties,
be objective and present each party's position fairly.`

// PromptStore loads the chat system prompt from a user-editable file
// on disk, falling back to the embedded default.
//
// The store uses lazy initialisation - the file is only created when
// first accessed, not in the constructor. This makes testing easier
// and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cached    string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.policyscan/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(home, ".policyscan", "prompts")
	}

	return &PromptStore{promptDir: promptDir}, nil
}

// SystemPrompt returns the chat system prompt. On first call the
// prompt directory and default file are created; afterwards the file
// content is cached. Any failure falls back to the embedded default.
func (s *PromptStore) SystemPrompt() string {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return defaultSystemPrompt
	}

	s.mu.RLock()
	if s.cached != "" {
		defer s.mu.RUnlock()
		return s.cached
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.promptDir, systemPromptFile))
	if err != nil {
		return defaultSystemPrompt
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return defaultSystemPrompt
	}

	s.mu.Lock()
	s.cached = prompt
	s.mu.Unlock()
	return prompt
}

// Reload clears the cached prompt, forcing a fresh read from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cached = ""
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and the default file.
// Called once via sync.Once on first SystemPrompt().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = err
		return
	}

	path := filepath.Join(s.promptDir, systemPromptFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(defaultSystemPrompt), 0600); err != nil {
			s.initErr = err
		}
	}
}
