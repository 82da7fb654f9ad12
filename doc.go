/*
Package simmy is a small conversational agent runtime built around an
in-process publish/subscribe bus.

The moving parts:

  - pubsub: string-named topics with synchronous, registration-order
    delivery. Everything else communicates through it.
  - tool: the tool contract (name, JSON-schema parameters, executor) and
    the Toolbox registry that validates arguments and captures failures
    as textual results.
  - agency: an in-memory task tracker the model manipulates through four
    generated tools.
  - provider: the model client abstraction, with an OpenAI adapter under
    provider/openai and a scripted double for tests.
  - agent: the turn loop. It listens for new_user_message, drives model
    calls and tool dispatch until a terminal reply, and republishes the
    reply on new_agent_message.

The root package wires these together:

	client := openai.New(openai.DefaultModel)
	rt, err := simmy.New(client, simmy.WithRole(role.Researcher()))
	if err != nil {
		// handle
	}
	if err := rt.Start(ctx); err != nil {
		// handle
	}
	rt.Bus.Subscribe(pubsub.TopicNewAgentMessage, render)
	rt.Bus.Publish(pubsub.TopicNewUserMessage, "hello")

cmd/simmy is a terminal chat client built on exactly this surface.
*/
package simmy
